package content

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/speechcoach-backend/internal/domain"
	"github.com/yungbote/speechcoach-backend/internal/generation"
	"github.com/yungbote/speechcoach-backend/internal/platform/mockllm"
)

func mustRequest(t *testing.T, kind domain.ContentKind) domain.GenerationRequest {
	t.Helper()
	req, err := domain.NewGenerationRequest("My Hometown", 3, domain.Beginner, kind)
	require.NoError(t, err)
	return req
}

func TestGenerateQuestionSet(t *testing.T) {
	capability := &mockllm.Scripted{TextReplies: []mockllm.Reply{{Text: wellFormed}}}
	g := NewGenerator(nil)

	out, err := g.Generate(context.Background(), capability, mustRequest(t, domain.PromptQuestions))
	require.NoError(t, err)
	require.Equal(t, 1, capability.TextCalls())
	assert.Equal(t, domain.PromptQuestions, out.Kind)
	require.NotNil(t, out.Sections)
	assert.Equal(t, 4, out.Sections.SectionCount())

	prompt := capability.Prompts[0]
	for _, h := range []string{HeaderDiscussionQuestions, HeaderKeyVocabulary, HeaderUsefulExpressions, HeaderGrammarFocus} {
		assert.Contains(t, prompt, h)
	}
	assert.Contains(t, prompt, "Write 3 open-ended questions")
	assert.Contains(t, prompt, "simple everyday vocabulary")
}

func TestGeneratePassage(t *testing.T) {
	capability := &mockllm.Scripted{TextReplies: []mockllm.Reply{{Text: "\n  A short passage.  \n"}}}
	out, err := NewGenerator(nil).Generate(context.Background(), capability, mustRequest(t, domain.ReadingPassage))
	require.NoError(t, err)
	assert.Equal(t, domain.ReadingPassage, out.Kind)
	assert.Equal(t, "A short passage.", out.Passage)
	assert.Nil(t, out.Sections)
	assert.Contains(t, capability.Prompts[0], "approximately 270 words")
}

func TestGenerateDegradedQuestionSetIsNotAnError(t *testing.T) {
	capability := &mockllm.Scripted{TextReplies: []mockllm.Reply{{Text: "Sorry, here are some questions:\n1. Why?"}}}
	out, err := NewGenerator(nil).Generate(context.Background(), capability, mustRequest(t, domain.PromptQuestions))
	require.NoError(t, err)
	assert.Equal(t, 0, out.Sections.SectionCount())
	assert.Equal(t, "No questions available.", out.Sections.Display(domain.SectionDiscussionQuestions))
}

func TestGenerateFailures(t *testing.T) {
	boom := errors.New("quota exceeded")
	cases := []struct {
		name  string
		reply mockllm.Reply
		cause error
	}{
		{"call error", mockllm.Reply{Err: boom}, boom},
		{"blank text", mockllm.Reply{Text: "   \n"}, generation.ErrEmptyResponse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			capability := &mockllm.Scripted{TextReplies: []mockllm.Reply{tc.reply}}
			_, err := NewGenerator(nil).Generate(context.Background(), capability, mustRequest(t, domain.PromptQuestions))
			var genErr *GenerationError
			require.ErrorAs(t, err, &genErr)
			assert.ErrorIs(t, err, tc.cause)
			assert.Equal(t, "My Hometown", genErr.Topic)
			assert.Equal(t, 1, capability.TextCalls())
		})
	}
}

func TestBuildPromptDifficultyProfiles(t *testing.T) {
	for d, p := range difficultyProfiles {
		req, err := domain.NewGenerationRequest("A Memorable Meal", 2, d, domain.ReadingPassage)
		require.NoError(t, err)
		prompt := BuildPrompt(req)
		assert.True(t, strings.Contains(prompt, p.Vocabulary) && strings.Contains(prompt, p.Style), string(d))
	}
}
