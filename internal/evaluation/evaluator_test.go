package evaluation

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/speechcoach-backend/internal/domain"
	"github.com/yungbote/speechcoach-backend/internal/generation"
	"github.com/yungbote/speechcoach-backend/internal/platform/mockllm"
)

func testInput() Input {
	return Input{
		Audio:           domain.AudioPayload{Filename: "a.wav", MIMEType: "audio/wav", Data: []byte("RIFF-audio")},
		Topic:           "My Hometown",
		DurationMinutes: 2,
		Difficulty:      domain.Intermediate,
	}
}

// isolateTemp points os.TempDir at a fresh directory and returns a func listing staged files in it.
func isolateTemp(t *testing.T) func() []string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)
	return func() []string {
		matches, err := filepath.Glob(filepath.Join(dir, "speechcoach-*"))
		require.NoError(t, err)
		return matches
	}
}

func TestEvaluateHappyPath(t *testing.T) {
	staged := isolateTemp(t)
	capability := &mockllm.Scripted{
		BlobReplies: []mockllm.Reply{{Text: "  I go home and slept.\n"}},
		TextReplies: []mockllm.Reply{{Text: "```json\n" + validReply + "\n```"}},
	}

	rec, err := NewEvaluator(nil).Evaluate(context.Background(), capability, testInput())
	require.NoError(t, err)

	require.Equal(t, 1, capability.BlobCallCount())
	call := capability.BlobCalls[0]
	assert.Equal(t, TranscriptionInstruction, call.Instruction)
	assert.Equal(t, "audio/wav", call.Blob.MIMEType)
	assert.Equal(t, []byte("RIFF-audio"), call.Blob.Data)

	require.Equal(t, 1, capability.TextCalls())
	prompt := capability.Prompts[0]
	assert.Contains(t, prompt, "I go home and slept.")
	assert.Contains(t, prompt, "My Hometown")
	assert.Contains(t, prompt, "#ffe6cc")
	assert.Contains(t, prompt, "Natural expression")

	assert.Equal(t, "I go home and slept.", rec.RawTranscription)
	assert.Len(t, rec.Scores, 5)
	assert.Empty(t, staged(), "temp audio file should be removed")
}

func TestEvaluateEmptyTranscriptionSkipsEvaluation(t *testing.T) {
	capability := &mockllm.Scripted{
		BlobReplies: []mockllm.Reply{{Text: "   "}},
		TextReplies: []mockllm.Reply{{Text: validReply}},
	}
	_, err := NewEvaluator(nil).Evaluate(context.Background(), capability, testInput())

	var trErr *TranscriptionError
	require.ErrorAs(t, err, &trErr)
	assert.ErrorIs(t, err, generation.ErrEmptyResponse)
	var evalErr *EvaluationError
	assert.False(t, errors.As(err, &evalErr))
	assert.Equal(t, 0, capability.TextCalls())
}

func TestEvaluateTranscriptionCallError(t *testing.T) {
	staged := isolateTemp(t)
	boom := errors.New("unsupported audio")
	capability := &mockllm.Scripted{BlobReplies: []mockllm.Reply{{Err: boom}}}
	_, err := NewEvaluator(nil).Evaluate(context.Background(), capability, testInput())

	var trErr *TranscriptionError
	require.ErrorAs(t, err, &trErr)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, staged())
}

func TestEvaluateEmptyAudio(t *testing.T) {
	in := testInput()
	in.Audio.Data = nil
	capability := &mockllm.Scripted{}
	_, err := NewEvaluator(nil).Evaluate(context.Background(), capability, in)
	var trErr *TranscriptionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, 0, capability.BlobCallCount())
}

func TestEvaluateMalformedReply(t *testing.T) {
	raw := strings.Replace(validReply, `"Slow down"]`, `"Slow down",]`, 1)
	capability := &mockllm.Scripted{
		BlobReplies: []mockllm.Reply{{Text: "hello"}},
		TextReplies: []mockllm.Reply{{Text: raw}},
	}
	_, err := NewEvaluator(nil).Evaluate(context.Background(), capability, testInput())

	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, raw, evalErr.Raw)
	var trErr *TranscriptionError
	assert.False(t, errors.As(err, &trErr))
}

func TestEvaluateEvaluationCallError(t *testing.T) {
	boom := errors.New("deadline")
	capability := &mockllm.Scripted{
		BlobReplies: []mockllm.Reply{{Text: "hello"}},
		TextReplies: []mockllm.Reply{{Err: boom}},
	}
	_, err := NewEvaluator(nil).Evaluate(context.Background(), capability, testInput())
	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.ErrorIs(t, err, boom)
}

func TestEvaluateWithMockEngine(t *testing.T) {
	rec, err := NewEvaluator(nil).Evaluate(context.Background(), mockllm.New(), testInput())
	require.NoError(t, err)
	for _, c := range domain.Criteria {
		assert.GreaterOrEqual(t, rec.Scores[c], domain.MinScore)
		assert.LessOrEqual(t, rec.Scores[c], domain.MaxScore)
	}
	assert.Contains(t, rec.TranscriptionWithErrors, "<span")
}
