package mockllm

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/speechcoach-backend/internal/generation"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
)

const (
	ProviderName = "mock"
	ModelName    = "mock-1"

	// RejectedKey is the one API key the mock refuses, so login failures can be exercised offline.
	RejectedKey = "invalid-key"
)

var errRejected = errors.New("mock: api key rejected")

var transcripts = []string{
	"Um, my hometown is a small city near the sea. I grow up there and, uh, I like it very much because the people is friendly.",
	"Last weekend I go to the market with my friend and we buyed some vegetables, and then we, um, cooked dinner together.",
	"I think the most important skill in my field is communication, because you have to, uh, explain your ideas clear to the team.",
}

// Engine is a deterministic offline Capability for local development and tests.
type Engine struct{}

func New() *Engine { return &Engine{} }

func NewFactory(log *logger.Logger) generation.Factory {
	return generation.FactoryFunc{
		Name: ProviderName,
		Fn: func(ctx context.Context, apiKey string) (generation.Capability, error) {
			if strings.TrimSpace(apiKey) == "" || apiKey == RejectedKey {
				return nil, errRejected
			}
			return generation.Instrument(log, New(), ProviderName, ModelName), nil
		},
	}
}

func (e *Engine) GenerateText(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch {
	case strings.Contains(prompt, "transcription_with_errors"):
		return evaluationReply(prompt), nil
	case strings.Contains(prompt, "## Discussion Questions"):
		return questionSetReply, nil
	case strings.Contains(strings.ToLower(prompt), "reading passage"):
		return passageReply, nil
	case strings.TrimSpace(prompt) == "":
		return "", generation.ErrEmptyResponse
	default:
		return "Hello! How can I help you practice today?", nil
	}
}

func (e *Engine) GenerateWithBlob(ctx context.Context, instruction string, blob generation.Blob) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(blob.Data) == 0 {
		return "", generation.ErrEmptyResponse
	}
	h := sha256.Sum256(blob.Data)
	idx := binary.LittleEndian.Uint32(h[:4]) % uint32(len(transcripts))
	return transcripts[idx], nil
}

// evaluationReply returns a fenced JSON evaluation whose scores vary with the transcript.
func evaluationReply(prompt string) string {
	h := sha256.Sum256([]byte(prompt))
	score := func(i int) int { return 5 + int(h[i]%4) }
	return fmt.Sprintf("```json\n"+`{
  "scores": {"pronunciation": %d, "vocabulary": %d, "grammar": %d, "fluency": %d, "coherence": %d},
  "transcription_with_errors": "I &lt;span style=\"background-color: #ffdddd; border-bottom: 1px dotted red;\" title=\"Grammar correction: grew up\"&gt;grow up&lt;/span&gt; there.",
  "detailed_feedback": {
    "pronunciation": "Clear vowels overall; final consonants are sometimes dropped.",
    "vocabulary": "Everyday vocabulary is used correctly but with little variety.",
    "grammar": "Past tense forms are often replaced with present tense.",
    "fluency": "Frequent fillers such as 'um' and 'uh' interrupt the flow.",
    "coherence": "Ideas follow a logical order with simple connectors."
  },
  "strengths": ["Good use of connectors", "Confident delivery"],
  "improvement_recommendations": ["Practise irregular past tense verbs", "Replace fillers with short pauses"]
}`+"\n```", score(0), score(1), score(2), score(3), score(4))
}

const passageReply = `Every town has a story, and mine begins at the harbour. In the early morning the fishing boats return, and the market fills with voices.

People here greet each other by name. Although the city has grown, the old streets near the water still feel like a village.`

const questionSetReply = `## Discussion Questions (Read carefully and answer thoroughly)
1. What do you remember most about the place where you grew up?
2. How has your hometown changed in recent years?

## Key Vocabulary (Use these words in your response)
- **harbour**: a sheltered area of water where boats stay

## Useful Expressions (Incorporate these phrases)
- "What stands out to me is..."

## Grammar Focus (Use these structures)
- Past simple vs. present perfect: "I grew up..." / "It has changed..."`
