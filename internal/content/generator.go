package content

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/speechcoach-backend/internal/domain"
	"github.com/yungbote/speechcoach-backend/internal/generation"
	"github.com/yungbote/speechcoach-backend/internal/observability"
	"github.com/yungbote/speechcoach-backend/internal/platform/ctxutil"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
)

type Generator struct {
	log *logger.Logger
}

func NewGenerator(log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{log: log.With("service", "ContentGenerator")}
}

// Generate makes exactly one generation call and shapes the reply into StudyContent.
// Question sets with missing sections are returned as-is; only a failed or empty call is an error.
func (g *Generator) Generate(ctx context.Context, capability generation.Capability, req domain.GenerationRequest) (domain.StudyContent, error) {
	ctx, span := observability.StartSpan(ctx, "content.generate",
		attribute.String("content.kind", string(req.Kind())),
		attribute.String("content.difficulty", string(req.Difficulty())),
		attribute.Int("content.duration_minutes", req.DurationMinutes()),
	)
	defer span.End()

	metrics := observability.Current()
	text, err := capability.GenerateText(ctx, BuildPrompt(req))
	if err == nil && strings.TrimSpace(text) == "" {
		err = generation.ErrEmptyResponse
	}
	if err != nil {
		metrics.ObservePipeline("content", "failed")
		span.RecordError(err)
		return domain.StudyContent{}, &GenerationError{Topic: req.Topic(), Err: err}
	}

	if req.Kind() == domain.ReadingPassage {
		metrics.ObservePipeline("content", "ok")
		return domain.NewPassage(strings.TrimSpace(text)), nil
	}

	sections := SplitSections(text)
	if missing := MissingSections(sections); len(missing) > 0 {
		for _, s := range missing {
			metrics.IncMissingSection(string(s))
		}
		metrics.ObservePipeline("content", "degraded")
		g.log.Warn("question set is missing sections",
			append([]interface{}{"found", sections.SectionCount(), "missing", missing, "topic", req.Topic()}, ctxutil.LogFields(ctx)...)...)
	} else {
		metrics.ObservePipeline("content", "ok")
	}
	span.SetAttributes(attribute.Int("content.sections_found", sections.SectionCount()))
	return domain.NewQuestionSet(sections), nil
}
