package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	WordsPerMinute     = 90
	QuestionsPerMinute = 1

	MinDurationMinutes     = 1
	MaxDurationMinutes     = 10
	DefaultDurationMinutes = 2
)

var ErrInvalidRequest = errors.New("invalid request")

type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

var Difficulties = []Difficulty{Beginner, Intermediate, Advanced}

func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(s)
	for _, d := range Difficulties {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidRequest, s)
}

type ContentKind string

const (
	ReadingPassage  ContentKind = "Reading Passage"
	PromptQuestions ContentKind = "Prompt Questions"
)

var ContentKinds = []ContentKind{ReadingPassage, PromptQuestions}

// ParseContentKind accepts the display label or a compact form ("reading_passage", "questions").
func ParseContentKind(s string) (ContentKind, error) {
	norm := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.TrimSpace(s)))
	switch norm {
	case "readingpassage", "reading", "passage":
		return ReadingPassage, nil
	case "promptquestions", "questions", "questionset", "prompts":
		return PromptQuestions, nil
	}
	return "", fmt.Errorf("%w: unknown content kind %q", ErrInvalidRequest, s)
}

var Topics = []string{
	"Daily Reflection",
	"A Recent Movie or TV Show",
	"My Typical Weekend",
	"Grocery Shopping Habits",
	"A IELTS Part 2",
	"The Last Time I Traveled",
	"A Recent Conversation with a Friend",
	"Foods I Dislike and Why",
	"My Favorite Book or Movie",
	"A Memorable Vacation",
	"A Recent News Event",
	"My Hometown",
	"My Favorite Hobby",
	"A Memorable Birthday",
	"A Time I Overcame a Challenge",
	"A Memorable Meal",
	"My Job or Studies",
	"A Skill That's Important in My Field",
}

func IsKnownTopic(topic string) bool {
	return lo.Contains(Topics, topic)
}

// GenerationRequest is immutable once built by NewGenerationRequest.
type GenerationRequest struct {
	topic      string
	duration   int
	difficulty Difficulty
	kind       ContentKind
}

func NewGenerationRequest(topic string, durationMinutes int, difficulty Difficulty, kind ContentKind) (GenerationRequest, error) {
	topic = strings.TrimSpace(topic)
	if !IsKnownTopic(topic) {
		return GenerationRequest{}, fmt.Errorf("%w: unknown topic %q", ErrInvalidRequest, topic)
	}
	if err := ValidateDuration(durationMinutes); err != nil {
		return GenerationRequest{}, err
	}
	if !lo.Contains(Difficulties, difficulty) {
		return GenerationRequest{}, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidRequest, difficulty)
	}
	if !lo.Contains(ContentKinds, kind) {
		return GenerationRequest{}, fmt.Errorf("%w: unknown content kind %q", ErrInvalidRequest, kind)
	}
	return GenerationRequest{topic: topic, duration: durationMinutes, difficulty: difficulty, kind: kind}, nil
}

func ValidateDuration(minutes int) error {
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes, got %d",
			ErrInvalidRequest, MinDurationMinutes, MaxDurationMinutes, minutes)
	}
	return nil
}

func (r GenerationRequest) Topic() string { return r.topic }
func (r GenerationRequest) DurationMinutes() int { return r.duration }
func (r GenerationRequest) Difficulty() Difficulty { return r.difficulty }
func (r GenerationRequest) Kind() ContentKind { return r.kind }
func (r GenerationRequest) TargetWords() int { return r.duration * WordsPerMinute }
func (r GenerationRequest) TargetQuestions() int { return r.duration * QuestionsPerMinute }
func (r GenerationRequest) IsZero() bool { return r.topic == "" }

// SetupView is the serialisable form of a GenerationRequest.
type SetupView struct {
	Topic           string      `json:"topic"`
	DurationMinutes int         `json:"duration_minutes"`
	Difficulty      Difficulty  `json:"difficulty"`
	Kind            ContentKind `json:"content_kind"`
}

func (r GenerationRequest) View() SetupView {
	return SetupView{Topic: r.topic, DurationMinutes: r.duration, Difficulty: r.difficulty, Kind: r.kind}
}

// Request rebuilds a validated GenerationRequest from its stored view.
func (v SetupView) Request() (GenerationRequest, error) {
	return NewGenerationRequest(v.Topic, v.DurationMinutes, v.Difficulty, v.Kind)
}
