package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestBirbError_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  *BirbError
		want string
	}{
		{"plain", New("build failed"), "build failed"},
		{"with target", &BirbError{Kind: KindRuntime, Target: "windows", Message: "command failed"}, "[windows] command failed"},
		{"formatted", Newf("bad value %d", 7), "bad value 7"},
		{"not found", NotFound("manifest", ".birb/birb.json"), "manifest not found: .birb/birb.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBirbError_ExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  *BirbError
		want int
	}{
		{"runtime", New("oops"), ExitRuntimeError},
		{"not found", NotFound("manifest", "x"), ExitConfigError},
		{"validation", Validation("bad manifest"), ExitConfigError},
		{"preferences", Preferences("corrupt", nil), ExitConfigError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	t.Parallel()
	if got := GetExitCode(nil); got != ExitSuccess {
		t.Errorf("GetExitCode(nil) = %d, want %d", got, ExitSuccess)
	}
	if got := GetExitCode(Validation("x")); got != ExitConfigError {
		t.Errorf("GetExitCode(validation) = %d, want %d", got, ExitConfigError)
	}
	if got := GetExitCode(fmt.Errorf("plain error")); got != ExitRuntimeError {
		t.Errorf("GetExitCode(plain) = %d, want %d", got, ExitRuntimeError)
	}
}

func TestUnwrap(t *testing.T) {
	t.Parallel()
	wrapped := WrapKind(KindNotFound, os.ErrNotExist, "manifest unreadable")
	if !errors.Is(wrapped, os.ErrNotExist) {
		t.Error("errors.Is(wrapped, os.ErrNotExist) = false, want true")
	}
	if wrapped.ExitCode() != ExitConfigError {
		t.Errorf("ExitCode() = %d, want %d", wrapped.ExitCode(), ExitConfigError)
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	t.Parallel()
	cause := errors.New("disk on fire")
	err := Wrap(cause, "save failed")
	if !errors.Is(err, cause) {
		t.Error("wrapped error does not match cause")
	}
	if err.Error() != "save failed" {
		t.Errorf("Error() = %q, want %q", err.Error(), "save failed")
	}
}
