package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/speechcoach-backend/internal/http/response"
	"github.com/yungbote/speechcoach-backend/internal/observability"
	"github.com/yungbote/speechcoach-backend/internal/platform/apierr"
)

func TestMetricsRecordsErrorCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := observability.New()

	r := gin.New()
	r.Use(Metrics(m))
	r.POST("/api/session/evaluate", func(c *gin.Context) {
		response.RespondAPIError(c, apierr.New(http.StatusBadGateway, apierr.CodeEvaluationFailed, errors.New("bad reply")), "{oops")
	})
	r.GET("/api/options", func(c *gin.Context) { response.RespondOK(c, gin.H{}) })

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/api/session/evaluate", nil),
		httptest.NewRequest(http.MethodGet, "/api/options", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	want := `sc_api_errors_total{route="/api/session/evaluate",status="502",code="evaluation_failed"} 1.000000`
	if !strings.Contains(out, want) {
		t.Fatalf("missing %q in output:\n%s", want, out)
	}
	if strings.Contains(out, `sc_api_errors_total{route="/api/options"`) {
		t.Fatalf("successful request counted as error:\n%s", out)
	}
	if !strings.Contains(out, `sc_api_requests_total{method="GET",route="/api/options",status="200"} 1.000000`) {
		t.Fatalf("missing request count:\n%s", out)
	}
}
