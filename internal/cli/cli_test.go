package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/speechcoach-backend/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SPEECHCOACH_CONFIG", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("TMPDIR", t.TempDir())
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateQuestionsWithMock(t *testing.T) {
	out, err := run(t, "generate", "--provider", "mock", "--kind", "questions", "--topic", "My Hometown", "--duration", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "My Hometown")
	assert.Contains(t, out, "## Discussion Questions")
	assert.Contains(t, out, "## Grammar Focus")
}

func TestGenerateRejectsUnknownTopic(t *testing.T) {
	_, err := run(t, "generate", "--provider", "mock", "--topic", "Rocket Science")
	require.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestGenerateNeedsKeyForRealProviders(t *testing.T) {
	_, err := run(t, "generate", "--provider", "gemini")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "API key"), err.Error())
}

func TestEvaluateWritesChartAndJSON(t *testing.T) {
	dir := t.TempDir()
	wav := filepath.Join(dir, "answer.wav")
	require.NoError(t, os.WriteFile(wav, []byte("RIFF\x24\x00\x00\x00WAVEfmt "), 0o644))
	chartPath := filepath.Join(dir, "scores.png")
	jsonPath := filepath.Join(dir, "scores.json")

	out, err := run(t, "evaluate", "--provider", "mock", "--audio", wav, "--chart", chartPath, "--json", jsonPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Pronunciation")
	assert.Contains(t, out, "Overall")

	png, err := os.ReadFile(chartPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	b, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var rec domain.EvaluationRecord
	require.NoError(t, json.Unmarshal(b, &rec))
	assert.Len(t, rec.Scores, len(domain.Criteria))
	assert.NotEmpty(t, rec.RawTranscription)
}
