package ctxutil

import (
	"context"
	"testing"
)

func TestTraceDataRoundTrip(t *testing.T) {
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t1", RequestID: "r1"})
	fields := LogFields(ctx)
	if len(fields) != 4 || fields[1] != "t1" || fields[3] != "r1" {
		t.Fatalf("fields=%v", fields)
	}
	if LogFields(context.Background()) != nil {
		t.Fatalf("expected nil fields without trace data")
	}
}

func TestSessionID(t *testing.T) {
	if got := SessionID(context.Background()); got != "" {
		t.Fatalf("got=%q", got)
	}
	ctx := WithSessionID(context.Background(), "abc")
	if got := SessionID(ctx); got != "abc" {
		t.Fatalf("got=%q", got)
	}
}
