package mockllm

import (
	"context"
	"sync"

	"github.com/yungbote/speechcoach-backend/internal/generation"
)

type Reply struct {
	Text string
	Err  error
}

type BlobCall struct {
	Instruction string
	Blob        generation.Blob
}

// Scripted replays queued replies in order and records every call.
// When a queue runs dry the call returns generation.ErrEmptyResponse.
type Scripted struct {
	mu          sync.Mutex
	TextReplies []Reply
	BlobReplies []Reply
	Prompts     []string
	BlobCalls   []BlobCall
}

func (s *Scripted) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts = append(s.Prompts, prompt)
	return pop(&s.TextReplies)
}

func (s *Scripted) GenerateWithBlob(ctx context.Context, instruction string, blob generation.Blob) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.BlobCalls = append(s.BlobCalls, BlobCall{Instruction: instruction, Blob: blob})
	return pop(&s.BlobReplies)
}

func (s *Scripted) TextCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Prompts)
}

func (s *Scripted) BlobCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.BlobCalls)
}

func pop(q *[]Reply) (string, error) {
	if len(*q) == 0 {
		return "", generation.ErrEmptyResponse
	}
	r := (*q)[0]
	*q = (*q)[1:]
	return r.Text, r.Err
}

// StaticFactory hands out the same capability for every key except RejectedKey.
func StaticFactory(c generation.Capability) generation.Factory {
	return generation.FactoryFunc{
		Name: ProviderName,
		Fn: func(ctx context.Context, apiKey string) (generation.Capability, error) {
			if apiKey == "" || apiKey == RejectedKey {
				return nil, errRejected
			}
			return c, nil
		},
	}
}
