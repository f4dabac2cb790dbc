package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/yungbote/speechcoach-backend/internal/generation"
)

func TestExtractTextConcatenatesParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello, "), genai.Blob{MIMEType: "audio/wav"}}}},
			nil,
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("world")}}},
		},
	}
	if got := extractText(resp); got != "Hello, world" {
		t.Fatalf("got=%q", got)
	}
	if got := extractText(nil); got != "" {
		t.Fatalf("nil response: got=%q", got)
	}
}

func TestConfigureModelAppliesSettings(t *testing.T) {
	m := &genai.GenerativeModel{}
	configureModel(m, generation.DefaultSettings())
	if m.Temperature == nil || *m.Temperature != 0.5 {
		t.Fatalf("temperature not set: %v", m.Temperature)
	}
	if m.TopK == nil || *m.TopK != 32 {
		t.Fatalf("top_k not set: %v", m.TopK)
	}
	if m.MaxOutputTokens == nil || *m.MaxOutputTokens != 8192 {
		t.Fatalf("max tokens not set: %v", m.MaxOutputTokens)
	}
	if len(m.SafetySettings) != 4 {
		t.Fatalf("safety settings: got=%d want=4", len(m.SafetySettings))
	}
	for _, s := range m.SafetySettings {
		if s.Threshold != genai.HarmBlockNone {
			t.Fatalf("threshold for %v: got=%v", s.Category, s.Threshold)
		}
	}
}

func TestNewRejectsEmptyKey(t *testing.T) {
	if _, err := New(context.Background(), nil, "  ", generation.DefaultSettings()); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
