package pseudonym

import (
	"errors"
	"testing"
)

func TestPIDNormalizationInvariance(t *testing.T) {
	t.Parallel()

	hasher, err := New("s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	variants := []string{
		"jane@org.com",
		"Jane@Org.com",
		"  JANE@ORG.COM  ",
		"jane@org.com\n",
	}

	first, err := hasher.PID(variants[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != PIDLength {
		t.Fatalf("expected pid of length %d, got %d", PIDLength, len(first))
	}

	for _, v := range variants[1:] {
		pid, err := hasher.PID(v)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", v, err)
		}
		if pid != first {
			t.Fatalf("expected %q to hash to %s, got %s", v, first, pid)
		}
	}
}

func TestPIDDistinctIdentifiers(t *testing.T) {
	t.Parallel()

	hasher, err := New("s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := hasher.PID("jane@org.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := hasher.PID("john@org.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a == b {
		t.Fatalf("distinct identifiers produced the same pid: %s", a)
	}
}

func TestPIDDependsOnSalt(t *testing.T) {
	t.Parallel()

	h1, _ := New("s1")
	h2, _ := New("s2")

	a, _ := h1.PID("jane@org.com")
	b, _ := h2.PID("jane@org.com")

	if a == b {
		t.Fatalf("different salts produced the same pid: %s", a)
	}
}

func TestPIDInvalidIdentifiers(t *testing.T) {
	t.Parallel()

	hasher, _ := New("s1")

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "whitespace", input: "   "},
		{name: "no at sign", input: "jane.org.com"},
		{name: "no domain dot", input: "jane@org"},
		{name: "spaces inside", input: "jane doe@org.com"},
		{name: "double at", input: "jane@@org.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := hasher.PID(tt.input)
			if !errors.Is(err, ErrInvalidIdentifier) {
				t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
			}
		})
	}
}

func TestNewRequiresSalt(t *testing.T) {
	t.Parallel()

	if _, err := New("  "); !errors.Is(err, ErrEmptySalt) {
		t.Fatalf("expected ErrEmptySalt, got %v", err)
	}
}

func TestRegistryCollision(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	if err := registry.Register("abcd", "jane@org.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same identifier again is a repeat, not a collision.
	if err := registry.Register("abcd", "jane@org.com"); err != nil {
		t.Fatalf("unexpected error on repeat: %v", err)
	}

	err := registry.Register("abcd", "john@org.com")
	if !errors.Is(err, ErrPIDCollision) {
		t.Fatalf("expected ErrPIDCollision, got %v", err)
	}

	if registry.Len() != 1 {
		t.Fatalf("expected 1 registered pid, got %d", registry.Len())
	}
}
