package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func TestAssessorAssess(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: `{"score": 0.8, "reason": "specific and relevant"}`}
	assessor := NewAssessor(stub, 0, zap.NewNop())

	assessment, err := assessor.Assess(context.Background(), "We digitize seed fair records for 30 cooperatives.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if assessment.Score != 0.8 {
		t.Fatalf("expected score 0.8, got %v", assessment.Score)
	}
	if assessment.Reason != "specific and relevant" {
		t.Fatalf("unexpected reason: %q", assessment.Reason)
	}
	if !strings.Contains(stub.lastPrompt, "We digitize seed fair records") {
		t.Fatalf("expected statement in prompt")
	}
	if strings.Contains(stub.lastPrompt, statementPlaceholder) {
		t.Fatalf("placeholder left in prompt")
	}
}

func TestAssessorEmptyStatement(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: `should not be called`}
	assessor := NewAssessor(stub, 0, zap.NewNop())

	assessment, err := assessor.Assess(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assessment.Score != 0 {
		t.Fatalf("expected score 0, got %v", assessment.Score)
	}
	if stub.lastPrompt != "" {
		t.Fatalf("did not expect a model call for empty statement")
	}
}

func TestAssessorGeneratorError(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{err: errors.New("quota exceeded")}
	assessor := NewAssessor(stub, 0, zap.NewNop())

	if _, err := assessor.Assess(context.Background(), "some text"); err == nil {
		t.Fatalf("expected error from generator")
	}
}

func TestParseAssessment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		score   float64
		wantErr bool
	}{
		{name: "plain json", raw: `{"score": 0.5, "reason": "ok"}`, score: 0.5},
		{name: "fenced json", raw: "```json\n{\"score\": 1.0, \"reason\": \"great\"}\n```", score: 1.0},
		{name: "surrounding prose", raw: "Here you go: {\"score\": 0.25, \"reason\": \"thin\"} hope it helps", score: 0.25},
		{name: "no json", raw: "no object here", wantErr: true},
		{name: "invalid json", raw: "{score: oops}", wantErr: true},
		{name: "score out of range", raw: `{"score": 7.5, "reason": "bad"}`, wantErr: true},
		{name: "negative score", raw: `{"score": -0.1, "reason": "bad"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assessment, err := parseAssessment(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", assessment)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if assessment.Score != tt.score {
				t.Fatalf("expected score %v, got %v", tt.score, assessment.Score)
			}
		})
	}
}
