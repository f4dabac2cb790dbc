package domain

import (
	"errors"
	"testing"
)

func TestNewGenerationRequestDerivedTargets(t *testing.T) {
	req, err := NewGenerationRequest("My Hometown", 3, Intermediate, PromptQuestions)
	if err != nil {
		t.Fatalf("NewGenerationRequest: %v", err)
	}
	if req.TargetWords() != 270 {
		t.Fatalf("TargetWords: got=%d want=270", req.TargetWords())
	}
	if req.TargetQuestions() != 3 {
		t.Fatalf("TargetQuestions: got=%d want=3", req.TargetQuestions())
	}
}

func TestNewGenerationRequestValidation(t *testing.T) {
	cases := []struct {
		name     string
		topic    string
		duration int
		diff     Difficulty
		kind     ContentKind
	}{
		{"unknown topic", "Quantum Chromodynamics", 2, Beginner, ReadingPassage},
		{"zero duration", "My Hometown", 0, Beginner, ReadingPassage},
		{"long duration", "My Hometown", 11, Beginner, ReadingPassage},
		{"bad difficulty", "My Hometown", 2, Difficulty("Expert"), ReadingPassage},
		{"bad kind", "My Hometown", 2, Beginner, ContentKind("Essay")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewGenerationRequest(tc.topic, tc.duration, tc.diff, tc.kind)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestParseDifficultyAndKind(t *testing.T) {
	d, err := ParseDifficulty(" advanced ")
	if err != nil || d != Advanced {
		t.Fatalf("ParseDifficulty: got=%q err=%v", d, err)
	}
	k, err := ParseContentKind("reading_passage")
	if err != nil || k != ReadingPassage {
		t.Fatalf("ParseContentKind: got=%q err=%v", k, err)
	}
	k, err = ParseContentKind("Prompt Questions")
	if err != nil || k != PromptQuestions {
		t.Fatalf("ParseContentKind: got=%q err=%v", k, err)
	}
}

func TestSetupViewRoundTrip(t *testing.T) {
	req, err := NewGenerationRequest("A Memorable Meal", 5, Advanced, ReadingPassage)
	if err != nil {
		t.Fatalf("NewGenerationRequest: %v", err)
	}
	back, err := req.View().Request()
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if back != req {
		t.Fatalf("round trip mismatch: got=%+v want=%+v", back, req)
	}
}

func TestSectionedContentDisplay(t *testing.T) {
	sc := SectionedContent{DiscussionQuestions: "## Discussion Questions\n1. Why?"}
	if got := sc.Display(SectionKeyVocabulary); got != "No vocabulary available." {
		t.Fatalf("placeholder: got=%q", got)
	}
	if got := sc.Display(SectionDiscussionQuestions); got != sc.DiscussionQuestions {
		t.Fatalf("display: got=%q", got)
	}
	if sc.SectionCount() != 1 {
		t.Fatalf("SectionCount: got=%d", sc.SectionCount())
	}
}
