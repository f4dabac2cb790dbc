package provider

import (
	"fmt"
	"strings"

	"github.com/yungbote/speechcoach-backend/internal/config"
	"github.com/yungbote/speechcoach-backend/internal/generation"
	"github.com/yungbote/speechcoach-backend/internal/platform/gemini"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
	"github.com/yungbote/speechcoach-backend/internal/platform/mockllm"
	"github.com/yungbote/speechcoach-backend/internal/platform/openai"
)

// New picks the generation backend named by cfg.Provider.
func New(log *logger.Logger, cfg config.GenerationConfig) (generation.Factory, error) {
	settings := generation.DefaultSettings().WithModel(strings.TrimSpace(cfg.Model))
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", gemini.ProviderName:
		return gemini.NewFactory(log, settings), nil
	case openai.ProviderName:
		model := strings.TrimSpace(cfg.Model)
		if strings.HasPrefix(model, "gemini") {
			model = ""
		}
		return openai.NewFactory(log, openai.Config{
			BaseURL: cfg.OpenAIBaseURL,
			Model:   model,
			Timeout: cfg.Timeout.Duration,
		}, settings), nil
	case mockllm.ProviderName:
		return mockllm.NewFactory(log), nil
	default:
		return nil, fmt.Errorf("unsupported generation provider %q", cfg.Provider)
	}
}
