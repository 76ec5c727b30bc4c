package logger

import "testing"

func TestNew(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		json  bool
		debug bool
	}{
		{name: "console info"},
		{name: "json info", json: true},
		{name: "console debug", debug: true},
		{name: "json debug", json: true, debug: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := New(tc.json, tc.debug)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if logger == nil {
				t.Fatalf("expected a logger")
			}
		})
	}
}

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{name: "short string untouched", input: "ok", limit: 10, expected: "ok"},
		{name: "exactly at limit", input: "12345", limit: 5, expected: "12345"},
		{name: "truncated with ellipsis", input: "0123456789", limit: 4, expected: "0123..."},
		{name: "whitespace trimmed first", input: "  abc  ", limit: 10, expected: "abc"},
		{name: "zero limit", input: "abc", limit: 0, expected: ""},
		{name: "multibyte runes", input: "日本語テキスト", limit: 3, expected: "日本語..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateForLog(tc.input, tc.limit)
			if got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
