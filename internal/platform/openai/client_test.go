package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/yungbote/speechcoach-backend/internal/generation"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

func TestGenerateWithBlobSendsInputAudio(t *testing.T) {
	calls := 0
	hc := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		if req.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		if got := req.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Fatalf("authorization=%q", got)
		}
		var in chatRequest
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			t.Fatalf("decode req: %v", err)
		}
		if len(in.Messages) != 1 || len(in.Messages[0].Content) != 2 {
			t.Fatalf("unexpected messages: %+v", in.Messages)
		}
		audio := in.Messages[0].Content[1].InputAudio
		if audio == nil || audio.Format != "wav" || audio.Data != "UklGRg==" {
			t.Fatalf("input_audio=%+v", audio)
		}
		if in.Temperature != 0.5 || in.MaxTokens != 8192 {
			t.Fatalf("settings not applied: %+v", in)
		}
		return jsonResponse(http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"um hello"}}]}`), nil
	})}

	c, err := NewClientWithHTTPClient(nil, "sk-test", Config{BaseURL: "http://upstream/"}, generation.DefaultSettings(), hc)
	if err != nil {
		t.Fatalf("NewClientWithHTTPClient: %v", err)
	}
	out, err := c.GenerateWithBlob(context.Background(), "transcribe", generation.Blob{MIMEType: "audio/wav", Data: []byte("RIFF")})
	if err != nil {
		t.Fatalf("GenerateWithBlob: %v", err)
	}
	if out != "um hello" {
		t.Fatalf("out=%q", out)
	}
	if calls != 1 {
		t.Fatalf("calls=%d", calls)
	}
}

func TestHTTPErrorIsNotRetried(t *testing.T) {
	calls := 0
	hc := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusTooManyRequests, `{"error":"slow down"}`), nil
	})}
	c, _ := NewClientWithHTTPClient(nil, "sk-test", Config{BaseURL: "http://upstream"}, generation.DefaultSettings(), hc)
	_, err := c.GenerateText(context.Background(), "hello")
	var httpErr *openAIHTTPError
	if !errors.As(err, &httpErr) || httpErr.HTTPStatusCode() != http.StatusTooManyRequests {
		t.Fatalf("err=%v", err)
	}
	if calls != 1 {
		t.Fatalf("calls=%d", calls)
	}
}

func TestEmptyContentIsEmptyResponse(t *testing.T) {
	hc := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"  "}}]}`), nil
	})}
	c, _ := NewClientWithHTTPClient(nil, "sk-test", Config{BaseURL: "http://upstream"}, generation.DefaultSettings(), hc)
	if _, err := c.GenerateText(context.Background(), "hello"); !errors.Is(err, generation.ErrEmptyResponse) {
		t.Fatalf("err=%v", err)
	}
}

func TestAudioFormat(t *testing.T) {
	if f, err := audioFormat("audio/mpeg"); err != nil || f != "mp3" {
		t.Fatalf("mpeg: f=%q err=%v", f, err)
	}
	if _, err := audioFormat("audio/mp4"); err == nil {
		t.Fatalf("expected unsupported error for m4a")
	}
}
