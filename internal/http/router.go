package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/speechcoach-backend/internal/http/handlers"
	httpMW "github.com/yungbote/speechcoach-backend/internal/http/middleware"
	"github.com/yungbote/speechcoach-backend/internal/observability"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	CORSOrigins    []string
	MaxBodyBytes   int64
	ServiceName    string
	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler  *httpH.HealthHandler
	OptionsHandler *httpH.OptionsHandler
	AuthHandler    *httpH.AuthHandler
	SessionHandler *httpH.SessionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", func(c *gin.Context) { cfg.Metrics.WriteHTTP(c.Writer, c.Request) })
	}

	api := r.Group("/api")
	{
		if cfg.OptionsHandler != nil {
			api.GET("/options", cfg.OptionsHandler.Options)
		}

		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/api-key", cfg.AuthHandler.LoginAPIKey)
			api.POST("/auth/password", cfg.AuthHandler.LoginPassword)
		}
	}

	protected := api.Group("/session")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireSession())
		}
		protected.Use(httpMW.LimitBody(cfg.MaxBodyBytes))

		if cfg.SessionHandler != nil {
			protected.GET("", cfg.SessionHandler.GetSession)
			protected.DELETE("", cfg.SessionHandler.Delete)
			protected.POST("/content", cfg.SessionHandler.SubmitSetup)
			protected.POST("/recording", cfg.SessionHandler.StartRecording)
			protected.POST("/audio", cfg.SessionHandler.AttachAudio)
			protected.POST("/evaluate", cfg.SessionHandler.Evaluate)
			protected.GET("/evaluation", cfg.SessionHandler.GetEvaluation)
			protected.GET("/evaluation/chart.png", cfg.SessionHandler.Chart)
			protected.POST("/start-over", cfg.SessionHandler.StartOver)
		}
	}

	return r
}
