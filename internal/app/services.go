package app

import (
	"fmt"

	"github.com/yungbote/speechcoach-backend/internal/auth"
	"github.com/yungbote/speechcoach-backend/internal/config"
	"github.com/yungbote/speechcoach-backend/internal/content"
	"github.com/yungbote/speechcoach-backend/internal/evaluation"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
	"github.com/yungbote/speechcoach-backend/internal/services"
)

type Services struct {
	Auth     auth.Service
	Tokens   *auth.Tokens
	Practice services.PracticeService
}

func wireServices(log *logger.Logger, cfg *config.Config, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	authService := auth.NewService(log, clients.Generation, cfg.Auth.DefaultAPIKey, cfg.Auth.PasswordHashes)
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Duration)

	practice, err := services.NewPracticeService(services.PracticeDeps{
		Log:         log,
		Factory:     clients.Generation,
		Store:       clients.Store,
		Auth:        authService,
		Tokens:      tokens,
		Generator:   content.NewGenerator(log),
		Evaluator:   evaluation.NewEvaluator(log),
		CallTimeout: cfg.Generation.Timeout.Duration,
	})
	if err != nil {
		return Services{}, fmt.Errorf("init practice service: %w", err)
	}

	return Services{Auth: authService, Tokens: tokens, Practice: practice}, nil
}
