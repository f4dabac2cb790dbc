package mockllm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yungbote/speechcoach-backend/internal/generation"
)

func TestEngineIsDeterministic(t *testing.T) {
	e := New()
	blob := generation.Blob{MIMEType: "audio/wav", Data: []byte("RIFF....WAVE")}
	a, err := e.GenerateWithBlob(context.Background(), "transcribe", blob)
	if err != nil {
		t.Fatalf("GenerateWithBlob: %v", err)
	}
	b, _ := e.GenerateWithBlob(context.Background(), "transcribe", blob)
	if a != b {
		t.Fatalf("not deterministic: %q vs %q", a, b)
	}
}

func TestEngineRoutesByPrompt(t *testing.T) {
	e := New()
	out, _ := e.GenerateText(context.Background(), "Use the headers ## Discussion Questions and friends")
	if !strings.HasPrefix(out, "## Discussion Questions") {
		t.Fatalf("question set reply: %q", out)
	}
	out, _ = e.GenerateText(context.Background(), "return transcription_with_errors as JSON")
	if !strings.HasPrefix(out, "```json") {
		t.Fatalf("evaluation reply: %q", out)
	}
}

func TestFactoryRejectsKey(t *testing.T) {
	f := NewFactory(nil)
	if _, err := f.New(context.Background(), RejectedKey); err == nil {
		t.Fatalf("expected rejection")
	}
	if _, err := f.New(context.Background(), "any-key"); err != nil {
		t.Fatalf("New: %v", err)
	}
}

func TestScriptedQueues(t *testing.T) {
	boom := errors.New("boom")
	s := &Scripted{TextReplies: []Reply{{Text: "one"}, {Err: boom}}}
	if out, err := s.GenerateText(context.Background(), "p1"); err != nil || out != "one" {
		t.Fatalf("first: out=%q err=%v", out, err)
	}
	if _, err := s.GenerateText(context.Background(), "p2"); !errors.Is(err, boom) {
		t.Fatalf("second: err=%v", err)
	}
	if _, err := s.GenerateText(context.Background(), "p3"); !errors.Is(err, generation.ErrEmptyResponse) {
		t.Fatalf("drained: err=%v", err)
	}
	if s.TextCalls() != 3 {
		t.Fatalf("calls=%d", s.TextCalls())
	}
}
