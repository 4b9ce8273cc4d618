package kernel

import (
	"errors"
	"testing"
)

func TestFatal_IsErrFatalAndUnwrapsCause(t *testing.T) {
	cause := &ConfigError{Component: "fabric", Field: "DEPTH", Message: "must be > 0"}
	err := Fatal(cause)

	if !errors.Is(err, ErrFatal) {
		t.Fatal("expected errors.Is(err, ErrFatal) to be true")
	}

	var got *ConfigError
	if !errors.As(err, &got) {
		t.Fatal("expected errors.As to recover the wrapped *ConfigError")
	}
	if got != cause {
		t.Fatal("recovered cause is not the original *ConfigError")
	}
}

func TestConfigError_ErrorMessage(t *testing.T) {
	e := &ConfigError{Component: "queue", Field: "WIDTH", Message: "missing"}
	want := "config: queue.WIDTH: missing"
	if e.Error() != want {
		t.Fatalf("Error() = %q, want %q", e.Error(), want)
	}
}

func TestUnknownInterrupt_ErrorMessage(t *testing.T) {
	e := &UnknownInterrupt{Component: "socket0", Cause: Tick{}}
	if e.Error() == "" {
		t.Fatal("expected a non-empty error message")
	}
}
