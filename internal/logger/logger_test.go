package logger

import "testing"

func TestNew_Modes(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"production", "development", ""} {
		l, err := New(mode, "debug")
		if err != nil {
			t.Fatalf("mode %q: %v", mode, err)
		}
		l.With("run_id", "test").Debug("hello", "k", 1)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	if _, err := New("production", "loud"); err == nil {
		t.Fatalf("want error for invalid level")
	}
}
