package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	err := Wrap(ErrUnavailable, "ollama", "generate", "request failed", errors.New("connection refused"))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	want := "service unavailable: ollama: generate: request failed: connection refused"
	if err.Error() != want {
		t.Fatalf("error = %q, want %q", err.Error(), want)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if err.Error() != "service unavailable: service failure" {
		t.Fatalf("error = %q", err.Error())
	}
}
