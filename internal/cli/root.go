package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yungbote/speechcoach-backend/internal/config"
	"github.com/yungbote/speechcoach-backend/internal/generation"
	"github.com/yungbote/speechcoach-backend/internal/generation/provider"
	"github.com/yungbote/speechcoach-backend/internal/platform/envutil"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
)

type globalFlags struct {
	apiKey   string
	provider string
	model    string
	logMode  string
}

// NewRootCommand builds the speechcoach command tree. Running it without a subcommand serves HTTP.
func NewRootCommand() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:           "speechcoach",
		Short:         "English speaking-practice backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&g.apiKey, "api-key", "", "generation API key (default $GEMINI_API_KEY)")
	root.PersistentFlags().StringVar(&g.provider, "provider", "", "generation provider: gemini, openai or mock")
	root.PersistentFlags().StringVar(&g.model, "model", "", "generation model name")
	root.PersistentFlags().StringVar(&g.logMode, "log-mode", "", "logger mode (development or production)")

	root.AddCommand(newServeCommand())
	root.AddCommand(newGenerateCommand(&g))
	root.AddCommand(newEvaluateCommand(&g))
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// offline is what the generate and evaluate commands share: config, a quiet logger and one capability.
type offline struct {
	cfg        *config.Config
	log        *logger.Logger
	capability generation.Capability
}

func (g *globalFlags) open(ctx context.Context) (*offline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if g.provider != "" {
		cfg.Generation.Provider = strings.ToLower(g.provider)
	}
	if g.model != "" {
		cfg.Generation.Model = g.model
	}
	mode := g.logMode
	if mode == "" {
		mode = envutil.String("LOG_MODE", "production")
	}
	log, err := logger.New(mode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	factory, err := provider.New(log, cfg.Generation)
	if err != nil {
		return nil, err
	}
	key := g.apiKey
	if key == "" {
		key = cfg.Auth.DefaultAPIKey
	}
	if key == "" && factory.Provider() != "mock" {
		return nil, fmt.Errorf("an API key is required: pass --api-key or set GEMINI_API_KEY")
	}
	if key == "" {
		key = "local"
	}
	c, err := factory.New(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("init %s capability: %w", factory.Provider(), err)
	}
	return &offline{cfg: cfg, log: log, capability: c}, nil
}

func (o *offline) Close() {
	_ = generation.Close(o.capability)
	o.log.Sync()
}
