package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"arenavision/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrFetch, "schedule", "fetch agenda", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrFetch) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"schedule", "fetch agenda", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "input", err: services.Wrap(services.ErrInput, "session", "select event", "bad index", nil), want: false},
		{name: "process", err: services.Wrap(services.ErrProcess, "session", "helper", "exit 152", nil), want: false},
		{name: "fetch", err: services.Wrap(services.ErrFetch, "schedule", "fetch", "", nil), want: true},
		{name: "resolve", err: services.Wrap(services.ErrResolve, "resolver", "resolve", "", nil), want: true},
		{name: "config", err: fmt.Errorf("load: %w", services.ErrConfiguration), want: true},
		{name: "plain", err: errors.New("other"), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.IsFatal(tt.err); got != tt.want {
				t.Fatalf("IsFatal(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestNeedsIssueReport(t *testing.T) {
	if !services.NeedsIssueReport(services.Wrap(services.ErrResolve, "resolver", "", "", nil)) {
		t.Fatal("expected resolve errors to point at the issue tracker")
	}
	if services.NeedsIssueReport(services.Wrap(services.ErrExternalTool, "process", "", "", nil)) {
		t.Fatal("did not expect external tool errors to point at the issue tracker")
	}
}
