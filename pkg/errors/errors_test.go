package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIErrorIs(t *testing.T) {
	tests := []struct {
		name   string
		status int
		target error
		want   bool
	}{
		{"gateway timeout is unavailable", 504, ErrProviderUnavailable, true},
		{"gateway timeout is timeout", 504, ErrTimeout, true},
		{"cloudflare timeout is unavailable", 524, ErrProviderUnavailable, true},
		{"rate limited", 429, ErrRateLimited, true},
		{"server error is unavailable", 500, ErrProviderUnavailable, true},
		{"client error is not transient", 404, ErrProviderUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAPIError("banktrack", tt.status, "upstream failure")
			if got := errors.Is(err, tt.target); got != tt.want {
				t.Errorf("errors.Is(%d, %v) = %v, want %v", tt.status, tt.target, got, tt.want)
			}
		})
	}
}

func TestCycleError(t *testing.T) {
	err := &CycleError{Path: []string{"bank_a", "bank_b", "bank_a"}}
	if !IsCycle(err) {
		t.Error("CycleError should match ErrCycleDetected")
	}
	if !errors.Is(err, ErrCycleDetected) {
		t.Error("errors.Is should report ErrCycleDetected")
	}
}

func TestUnknownProviderError(t *testing.T) {
	err := &UnknownProviderError{Provider: "acme"}
	if !IsUnknownProvider(err) {
		t.Error("UnknownProviderError should match ErrUnknownProvider")
	}
}

func TestRowErrorUnwrap(t *testing.T) {
	inner := New("bad country code")
	err := &RowError{Provider: "wikidata", SourceID: "Q123", Row: 7, Err: inner}
	if !errors.Is(err, inner) {
		t.Error("RowError should unwrap to inner error")
	}
	if msg := err.Error(); msg == "" {
		t.Error("RowError should format a message")
	}
}

func TestWrapHelpersNilSafe(t *testing.T) {
	if WrapValidation("name", nil) != nil {
		t.Error("WrapValidation(nil) should be nil")
	}
	if WrapIO("read", "brands.yaml", nil) != nil {
		t.Error("WrapIO(nil) should be nil")
	}
	if WrapResource("update", "brand", "x", nil) != nil {
		t.Error("WrapResource(nil) should be nil")
	}
}

func TestNotFoundWrappedChain(t *testing.T) {
	base := NewNotFoundError("brand", "test_bank")
	wrapped := fmt.Errorf("looking up: %w", base)
	if !IsNotFound(wrapped) {
		t.Error("wrapped NotFoundError should still match ErrNotFound")
	}
}
