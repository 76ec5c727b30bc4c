package ai

import (
	"context"
)

// MotivationAssessment is the outcome of evaluating a motivation statement.
// Score is bounded to [0, 1] and scaled by the preset's motivation weight.
type MotivationAssessment struct {
	Score  float64
	Reason string
	Raw    string
}

// Assessor evaluates a motivation statement. Implementations must not log or
// persist the statement text.
type Assessor interface {
	Assess(ctx context.Context, motivation string) (*MotivationAssessment, error)
}
