package observability

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/speechcoach-backend/internal/platform/envutil"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	apiErrors   *CounterVec

	llmRequests *CounterVec
	llmLatency  *HistogramVec

	pipelineOutcomes *CounterVec
	missingSections  *CounterVec
	overallScore     *HistogramVec

	authAttempts *CounterVec
	transitions  *CounterVec

	redisUp   *Gauge
	redisPing *Gauge
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

func Current() *Metrics {
	return instance
}

func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = newMetrics()
		if log != nil {
			log.Info("metrics enabled")
		}
	})
	return instance
}

// New returns a standalone metrics set that is not the process-wide instance.
func New() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("sc_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"sc_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		),
		apiInflight: NewGauge("sc_api_inflight_requests", "In-flight API requests."),
		apiErrors:   NewCounterVec("sc_api_errors_total", "API error responses by route/status/code.", []string{"route", "status", "code"}),
		llmRequests: NewCounterVec("sc_llm_requests_total", "Generation capability calls by provider/model/operation/status.", []string{"provider", "model", "operation", "status"}),
		llmLatency: NewHistogramVec(
			"sc_llm_request_duration_seconds",
			"Generation capability latency in seconds.",
			[]string{"provider", "model", "operation", "status"},
			[]float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		),
		pipelineOutcomes: NewCounterVec("sc_pipeline_outcomes_total", "Pipeline results by pipeline/outcome.", []string{"pipeline", "outcome"}),
		missingSections:  NewCounterVec("sc_content_missing_sections_total", "Question-set sections missing from generated content.", []string{"section"}),
		overallScore: NewHistogramVec(
			"sc_evaluation_overall_score",
			"Overall evaluation scores.",
			[]string{"difficulty"},
			[]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		),
		authAttempts: NewCounterVec("sc_auth_attempts_total", "Login attempts by method/result.", []string{"method", "result"}),
		transitions:  NewCounterVec("sc_session_transitions_total", "Session state transitions by name/result.", []string{"transition", "result"}),
		redisUp:      NewGauge("sc_redis_up", "Redis session store reachability (1 up, 0 down)."),
		redisPing:    NewGauge("sc_redis_ping_seconds", "Last Redis ping latency in seconds."),
	}
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

type promWriter interface {
	WritePrometheus(w io.Writer) error
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []promWriter{
		m.apiRequests, m.apiLatency, m.apiInflight, m.apiErrors,
		m.llmRequests, m.llmLatency,
		m.pipelineOutcomes, m.missingSections, m.overallScore,
		m.authAttempts, m.transitions,
		m.redisUp, m.redisPing,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
}

// IncAPIError counts an error envelope, keyed by its error code so pipeline failures
// (generation_failed, transcription_failed, evaluation_failed) are told apart from client errors.
func (m *Metrics) IncAPIError(route, status, code string) {
	if m == nil {
		return
	}
	m.apiErrors.Inc(orUnknown(route), orUnknown(status), orUnknown(code))
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveLLMRequest(provider, model, operation, status string, dur time.Duration) {
	if m == nil {
		return
	}
	provider = orUnknown(provider)
	model = orUnknown(model)
	operation = orUnknown(operation)
	status = orUnknown(status)
	m.llmRequests.Inc(provider, model, operation, status)
	if dur > 0 {
		m.llmLatency.Observe(dur.Seconds(), provider, model, operation, status)
	}
}

// ObservePipeline records one pipeline outcome ("ok", "failed", "degraded").
func (m *Metrics) ObservePipeline(pipeline, outcome string) {
	if m == nil {
		return
	}
	m.pipelineOutcomes.Inc(orUnknown(pipeline), orUnknown(outcome))
}

func (m *Metrics) IncMissingSection(section string) {
	if m == nil {
		return
	}
	m.missingSections.Inc(orUnknown(section))
}

func (m *Metrics) ObserveOverallScore(difficulty string, score float64) {
	if m == nil {
		return
	}
	m.overallScore.Observe(score, orUnknown(difficulty))
}

func (m *Metrics) IncAuthAttempt(method string, ok bool) {
	if m == nil {
		return
	}
	result := "failed"
	if ok {
		result = "ok"
	}
	m.authAttempts.Inc(orUnknown(method), result)
}

func (m *Metrics) IncTransition(name string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.transitions.Inc(orUnknown(name), result)
}

func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb redis.UniversalClient, interval time.Duration) {
	if m == nil || rdb == nil {
		return
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil && ctx.Err() == nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}

func orUnknown(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "unknown"
	}
	return v
}
