package errkit_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"tally/internal/errkit"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := errkit.Wrap(errkit.ErrExternalTool, "release", "build", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errkit.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"release", "build", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := errkit.Wrap(nil, "store", "open", "cannot open database", nil)
	if !errors.Is(err, errkit.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", errkit.Wrap(errkit.ErrValidation, "service", "add", "unknown table", nil), http.StatusBadRequest},
		{"configuration", errkit.Wrap(errkit.ErrConfiguration, "config", "load", "bad value", nil), http.StatusBadRequest},
		{"not found", errkit.Wrap(errkit.ErrNotFound, "service", "get", "element not found", nil), http.StatusNotFound},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := errkit.HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestDetailStripsMarker(t *testing.T) {
	err := errkit.Wrap(errkit.ErrNotFound, "service", "get", "element not found", nil)
	if got := errkit.Detail(err); got != "service: get: element not found" {
		t.Fatalf("unexpected detail %q", got)
	}
	if got := errkit.Detail(nil); got != "" {
		t.Fatalf("expected empty detail for nil error, got %q", got)
	}
	plain := errors.New("no marker here")
	if got := errkit.Detail(plain); got != "no marker here" {
		t.Fatalf("expected passthrough for unmarked error, got %q", got)
	}
}
