package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/speechcoach-backend/internal/platform/ctxutil"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
	"github.com/yungbote/speechcoach-backend/internal/session"
)

type fakeResolver struct {
	sessions map[string]string
	live     map[string]bool
}

func (f fakeResolver) SessionFromToken(token string) (string, error) {
	if id, ok := f.sessions[token]; ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

func (f fakeResolver) Session(ctx context.Context, id string) (*session.State, error) {
	if f.live[id] {
		return &session.State{ID: id}, nil
	}
	return nil, session.ErrNotFound
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(logger.Nop(), fakeResolver{
		sessions: map[string]string{"good": "s-1", "stale": "s-2"},
		live:     map[string]bool{"s-1": true},
	})
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/api/session", am.RequireSession(), func(c *gin.Context) {
		c.String(http.StatusOK, ctxutil.SessionID(c.Request.Context()))
	})
	return r
}

func TestRequireSession(t *testing.T) {
	r := newAuthRouter()
	cases := []struct {
		name   string
		target string
		header string
		status int
		body   string
	}{
		{name: "bearer", target: "/api/session", header: "Bearer good", status: http.StatusOK, body: "s-1"},
		{name: "query", target: "/api/session?token=good", status: http.StatusOK, body: "s-1"},
		{name: "missing", target: "/api/session", status: http.StatusUnauthorized},
		{name: "bad token", target: "/api/session", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "expired session", target: "/api/session", header: "Bearer stale", status: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status: got=%d want=%d body=%s", rec.Code, tc.status, rec.Body.String())
			}
			if tc.body != "" && rec.Body.String() != tc.body {
				t.Fatalf("body: got=%q want=%q", rec.Body.String(), tc.body)
			}
		})
	}
}

func TestAttachTraceContextEchoesRequestID(t *testing.T) {
	r := newAuthRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("request id: got=%q", got)
	}
	if rec.Header().Get("X-Trace-Id") == "" {
		t.Fatalf("trace id header missing")
	}
}
