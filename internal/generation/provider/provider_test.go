package provider

import (
	"context"
	"testing"

	"github.com/yungbote/speechcoach-backend/internal/config"
)

func TestNewSelectsProvider(t *testing.T) {
	for _, name := range []string{"gemini", "openai", "mock"} {
		f, err := New(nil, config.GenerationConfig{Provider: name})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if f.Provider() != name {
			t.Fatalf("provider: got=%q want=%q", f.Provider(), name)
		}
	}
	if _, err := New(nil, config.GenerationConfig{Provider: "carrier-pigeon"}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestMockFactoryBuildsCapability(t *testing.T) {
	f, err := New(nil, config.GenerationConfig{Provider: "mock"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c, err := f.New(context.Background(), "k")
	if err != nil {
		t.Fatalf("factory New: %v", err)
	}
	out, err := c.GenerateText(context.Background(), "Hello")
	if err != nil || out == "" {
		t.Fatalf("GenerateText: out=%q err=%v", out, err)
	}
}
