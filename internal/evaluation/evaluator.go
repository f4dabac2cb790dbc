package evaluation

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/speechcoach-backend/internal/audio"
	"github.com/yungbote/speechcoach-backend/internal/domain"
	"github.com/yungbote/speechcoach-backend/internal/generation"
	"github.com/yungbote/speechcoach-backend/internal/observability"
	"github.com/yungbote/speechcoach-backend/internal/platform/ctxutil"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
	"github.com/yungbote/speechcoach-backend/internal/scoring"
)

// Input is everything one evaluation needs besides the capability.
type Input struct {
	Audio           domain.AudioPayload
	Topic           string
	DurationMinutes int
	Difficulty      domain.Difficulty
}

type Evaluator struct {
	log *logger.Logger
}

func NewEvaluator(log *logger.Logger) *Evaluator {
	if log == nil {
		log = logger.Nop()
	}
	return &Evaluator{log: log.With("service", "SpeechEvaluator")}
}

// Evaluate transcribes the audio, then asks for a rubric evaluation of the transcript.
// Errors are *TranscriptionError or *EvaluationError depending on the failing stage.
func (e *Evaluator) Evaluate(ctx context.Context, capability generation.Capability, in Input) (domain.EvaluationRecord, error) {
	ctx, span := observability.StartSpan(ctx, "evaluation.evaluate",
		attribute.String("evaluation.difficulty", string(in.Difficulty)),
		attribute.String("audio.mime_type", in.Audio.MIMEType),
		attribute.Int("audio.bytes", in.Audio.Size()),
	)
	defer span.End()
	metrics := observability.Current()

	transcript, err := e.Transcribe(ctx, capability, in.Audio)
	if err != nil {
		metrics.ObservePipeline("transcription", "failed")
		span.RecordError(err)
		return domain.EvaluationRecord{}, err
	}

	prompt := BuildEvaluationPrompt(transcript, in.Topic, in.DurationMinutes, in.Difficulty)
	raw, err := capability.GenerateText(ctx, prompt)
	if err == nil && strings.TrimSpace(raw) == "" {
		err = generation.ErrEmptyResponse
	}
	if err != nil {
		metrics.ObservePipeline("evaluation", "failed")
		span.RecordError(err)
		return domain.EvaluationRecord{}, &EvaluationError{Raw: raw, Err: err}
	}

	rec, err := ParseEvaluation(raw, transcript)
	if err != nil {
		metrics.ObservePipeline("evaluation", "invalid")
		span.RecordError(err)
		e.log.Warn("evaluation reply rejected",
			append([]interface{}{"error", err, "raw_bytes", len(raw)}, ctxutil.LogFields(ctx)...)...)
		return domain.EvaluationRecord{}, err
	}

	overall := scoring.Overall(rec.Scores)
	metrics.ObservePipeline("evaluation", "ok")
	metrics.ObserveOverallScore(string(in.Difficulty), overall)
	span.SetAttributes(attribute.Float64("evaluation.overall", overall))
	return rec, nil
}

// Transcribe stages the audio in a temp file for the duration of the call and returns
// the verbatim transcript. The temp file is removed on every path.
func (e *Evaluator) Transcribe(ctx context.Context, capability generation.Capability, payload domain.AudioPayload) (string, error) {
	path, cleanup, err := audio.Stage(payload)
	defer cleanup()
	if err != nil {
		return "", &TranscriptionError{Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &TranscriptionError{Err: fmt.Errorf("read staged audio: %w", err)}
	}

	text, err := capability.GenerateWithBlob(ctx, TranscriptionInstruction, generation.Blob{
		MIMEType: payload.MIMEType,
		Data:     data,
	})
	if err != nil {
		return "", &TranscriptionError{Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &TranscriptionError{Err: generation.ErrEmptyResponse}
	}
	return text, nil
}
