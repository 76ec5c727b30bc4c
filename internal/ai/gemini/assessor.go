package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/arnab1811/rfs-tool/internal/ai"
	"github.com/arnab1811/rfs-tool/internal/logger"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

//go:embed prompt.md
var promptTemplate string

const (
	statementPlaceholder = "{{STATEMENT}}"
	defaultMaxLogLength  = 200
)

// Assessor scores motivation statements through a Gemini model. The statement
// text is sent to the model but never logged.
type Assessor struct {
	generator contentGenerator
	maxLogLen int
	logger    *zap.Logger
}

func NewAssessor(generator contentGenerator, maxLogLength int, log *zap.Logger) *Assessor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Assessor{
		generator: generator,
		maxLogLen: maxLogLength,
		logger:    log,
	}
}

// Assess evaluates one motivation statement and returns a bounded score.
func (a *Assessor) Assess(ctx context.Context, motivation string) (*ai.MotivationAssessment, error) {
	if a.generator == nil {
		return nil, errors.New("content generator is not configured")
	}

	statement := strings.TrimSpace(motivation)
	if statement == "" {
		return &ai.MotivationAssessment{Score: 0, Reason: "empty statement"}, nil
	}

	prompt := strings.ReplaceAll(promptTemplate, statementPlaceholder, statement)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	assessment, err := parseAssessment(raw)
	if err != nil {
		a.logger.Debug("unparseable gemini response",
			zap.String("model", a.generator.Model()),
			zap.String("response", logger.TruncateForLog(raw, a.maxLogLen)),
		)
		return nil, err
	}

	a.logger.Debug("motivation assessed",
		zap.String("model", a.generator.Model()),
		zap.Float64("score", assessment.Score),
	)

	return assessment, nil
}

type assessmentPayload struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// parseAssessment extracts the JSON object from the model output, tolerating
// markdown fences and surrounding prose.
func parseAssessment(raw string) (*ai.MotivationAssessment, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	var payload assessmentPayload
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("decoding model response: %w", err)
	}

	if payload.Score < 0 || payload.Score > 1 {
		return nil, fmt.Errorf("model score %v out of range [0, 1]", payload.Score)
	}

	return &ai.MotivationAssessment{
		Score:  payload.Score,
		Reason: payload.Reason,
		Raw:    raw,
	}, nil
}
