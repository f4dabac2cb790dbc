package generation

import (
	"context"
	"errors"
	"io"
)

var ErrEmptyResponse = errors.New("generation returned no text")

// Blob is a binary payload sent alongside an instruction, tagged with its MIME type.
type Blob struct {
	MIMEType string
	Data     []byte
}

// Capability is a prompt-in, text-out generation service bound to one credential.
type Capability interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateWithBlob(ctx context.Context, instruction string, blob Blob) (string, error)
}

// Factory builds a Capability for a caller-supplied API key.
type Factory interface {
	New(ctx context.Context, apiKey string) (Capability, error)
	Provider() string
}

type FactoryFunc struct {
	Name string
	Fn   func(ctx context.Context, apiKey string) (Capability, error)
}

func (f FactoryFunc) New(ctx context.Context, apiKey string) (Capability, error) {
	return f.Fn(ctx, apiKey)
}

func (f FactoryFunc) Provider() string { return f.Name }

// Close releases a capability's underlying client when it holds one.
func Close(c Capability) error {
	if cl, ok := c.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
