package envutil

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	t.Setenv("SC_TEST_DUR", "90s")
	if got := Duration("SC_TEST_DUR", time.Second); got != 90*time.Second {
		t.Fatalf("got=%s", got)
	}
	t.Setenv("SC_TEST_DUR", "120")
	if got := Duration("SC_TEST_DUR", time.Second); got != 2*time.Minute {
		t.Fatalf("got=%s", got)
	}
	t.Setenv("SC_TEST_DUR", "soon")
	if got := Duration("SC_TEST_DUR", time.Second); got != time.Second {
		t.Fatalf("got=%s", got)
	}
}

func TestBoolAndList(t *testing.T) {
	t.Setenv("SC_TEST_BOOL", "off")
	if Bool("SC_TEST_BOOL", true) {
		t.Fatalf("expected false")
	}
	t.Setenv("SC_TEST_LIST", " a, ,b ,")
	got := List("SC_TEST_LIST")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("got=%v", got)
	}
}
