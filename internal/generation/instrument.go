package generation

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/speechcoach-backend/internal/observability"
	"github.com/yungbote/speechcoach-backend/internal/platform/ctxutil"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
)

type instrumented struct {
	log      *logger.Logger
	inner    Capability
	provider string
	model    string
}

// Instrument wraps a Capability with a span, metrics and a debug log line per call.
func Instrument(log *logger.Logger, inner Capability, provider, model string) Capability {
	if inner == nil {
		return nil
	}
	if log == nil {
		log = logger.Nop()
	}
	return &instrumented{
		log:      log.With("service", "GenerationCapability", "provider", provider),
		inner:    inner,
		provider: provider,
		model:    model,
	}
}

func (c *instrumented) Close() error { return Close(c.inner) }

func (c *instrumented) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.observe(ctx, "generate_text", len(prompt), func(ctx context.Context) (string, error) {
		return c.inner.GenerateText(ctx, prompt)
	})
}

func (c *instrumented) GenerateWithBlob(ctx context.Context, instruction string, blob Blob) (string, error) {
	return c.observe(ctx, "generate_with_blob", len(instruction)+len(blob.Data), func(ctx context.Context) (string, error) {
		return c.inner.GenerateWithBlob(ctx, instruction, blob)
	})
}

func (c *instrumented) observe(ctx context.Context, op string, inputBytes int, call func(context.Context) (string, error)) (string, error) {
	ctx, span := observability.StartSpan(ctx, "generation."+op,
		attribute.String("llm.provider", c.provider),
		attribute.String("llm.model", c.model),
		attribute.Int("llm.input_bytes", inputBytes),
	)
	defer span.End()

	start := time.Now()
	out, err := call(ctx)
	if err == nil && strings.TrimSpace(out) == "" {
		err = ErrEmptyResponse
	}
	dur := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
		if ctx.Err() != nil {
			status = "canceled"
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.Int("llm.output_bytes", len(out)))
	observability.Current().ObserveLLMRequest(c.provider, c.model, op, status, dur)

	kv := append([]interface{}{"op", op, "status", status, "duration_ms", dur.Milliseconds()}, ctxutil.LogFields(ctx)...)
	if err != nil {
		c.log.Warn("generation call failed", append(kv, "error", err)...)
		return "", err
	}
	c.log.Debug("generation call", kv...)
	return out, nil
}
