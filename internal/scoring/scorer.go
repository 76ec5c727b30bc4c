package scoring

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/arnab1811/rfs-tool/internal/ai"
)

// Breakdown carries the per-feature points behind a total score.
type Breakdown struct {
	Motivation float64
	Function   float64
	Referee    float64
	Language   float64
	Time       float64
	Alumni     float64
}

func (b Breakdown) sum() float64 {
	return b.Motivation + b.Function + b.Referee + b.Language + b.Time + b.Alumni
}

// ScoredRecord is the redacted output row: pseudonym, score and derived
// signals only. It never carries the identifier or any raw column.
type ScoredRecord struct {
	PID    string
	Sector string

	Uplift        float64
	UpliftApplied bool

	EquityFlag       bool
	MotivationScored bool

	Breakdown Breakdown
	Total     float64
	Decision  string
}

// EquityRule decides whether an applicant's sector qualifies for reserved
// shortlisting consideration. The flag never changes the score.
type EquityRule func(sector string) bool

// DefaultEquityRule reserves consideration for farmer organizations.
func DefaultEquityRule(sector string) bool {
	return sector == SectorFarmerOrg
}

// Options tune a Scorer beyond its preset.
type Options struct {
	// MotivationEnabled turns the motivation component on. Off by default:
	// the rubric is noisy on short cohorts.
	MotivationEnabled bool
	// Assessor replaces the heuristic rubric when set and motivation scoring
	// is enabled. On assessor errors the rubric is the fallback.
	Assessor ai.Assessor
	// EquityRule overrides DefaultEquityRule.
	EquityRule EquityRule
}

// Scorer computes ScoredRecords from extracted features. Given the same
// features and preset, output is identical across runs (the optional AI
// assessor is the documented exception).
type Scorer struct {
	preset     *Preset
	opts       Options
	equityRule EquityRule
	logger     *zap.Logger
}

func NewScorer(preset *Preset, opts Options, logger *zap.Logger) *Scorer {
	rule := opts.EquityRule
	if rule == nil {
		rule = DefaultEquityRule
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scorer{
		preset:     preset,
		opts:       opts,
		equityRule: rule,
		logger:     logger,
	}
}

// Score computes the ScoredRecord for one applicant.
func (s *Scorer) Score(ctx context.Context, pid string, f Features) *ScoredRecord {
	record := &ScoredRecord{PID: pid}

	record.Sector = ClassifySector(f.Organization)
	record.Uplift, record.UpliftApplied = s.preset.UpliftFor(record.Sector)
	record.EquityFlag = s.equityRule(record.Sector)

	record.Breakdown = Breakdown{
		Function: functionPoints(f.Function, s.preset.WFunction),
		Referee:  yesNoPoints(f.Referee, s.preset.WReferee),
		Language: languagePoints(f.Language, s.preset.WLanguage),
		Time:     timePoints(f.Time, s.preset.WTime),
		Alumni:   yesNoPoints(f.Alumni, s.preset.WAlumni),
	}

	if s.opts.MotivationEnabled {
		record.MotivationScored = true
		record.Breakdown.Motivation = s.motivationPoints(ctx, pid, f.Motivation)
	}

	record.Total = round2(record.Breakdown.sum() * record.Uplift)
	record.Decision = s.band(record.Total, record.EquityFlag)

	return record
}

func (s *Scorer) motivationPoints(ctx context.Context, pid, text string) float64 {
	if s.opts.Assessor == nil {
		return motivationPoints(text, s.preset)
	}

	assessment, err := s.opts.Assessor.Assess(ctx, text)
	if err != nil {
		s.logger.Warn("ai motivation assessment failed, falling back to rubric",
			zap.String("pid", pid),
			zap.Error(err),
		)
		return motivationPoints(text, s.preset)
	}

	return clamp01(assessment.Score) * s.preset.WMotivation
}

// band maps a total onto a decision. The equity band only applies when the
// equity flag is set, keeping the reserve policy separate from the score.
func (s *Scorer) band(total float64, equityFlag bool) string {
	switch {
	case total >= s.preset.ThreshPriority:
		return DecisionPriority
	case total >= s.preset.ThreshAdmit:
		return DecisionAdmit
	case equityFlag && total >= s.preset.EquityLower && total <= s.preset.EquityUpper:
		return DecisionReserveEquity
	default:
		return DecisionReserve
	}
}

const (
	DecisionPriority      = "Priority"
	DecisionAdmit         = "Admit"
	DecisionReserveEquity = "Reserve (Equity)"
	DecisionReserve       = "Reserve"
)

// Direct-role titles receive the full function weight; anything else
// non-empty is counted at 40%.
var directFunctionKeywords = []string{
	"specialist", "officer", "advisor", "director", "manager", "analyst", "lecturer",
}

func functionPoints(function string, weight float64) float64 {
	text := strings.ToLower(strings.TrimSpace(function))
	if text == "" {
		return 0
	}
	if containsAny(text, directFunctionKeywords) {
		return weight
	}
	return weight * 0.4
}

var negativePrefixes = []string{"no", "none", "n/a", "0"}

// yesNoPoints awards the full weight unless the answer is empty or negative.
func yesNoPoints(answer string, weight float64) float64 {
	text := strings.ToLower(strings.TrimSpace(answer))
	if text == "" {
		return 0
	}
	for _, prefix := range negativePrefixes {
		if strings.HasPrefix(text, prefix) {
			return 0
		}
	}
	return weight
}

func languagePoints(level string, weight float64) float64 {
	text := strings.ToLower(strings.TrimSpace(level))
	switch {
	case containsAny(text, []string{"fluent", "native", "advanced", "excellent"}):
		return weight
	case containsAny(text, []string{"working", "intermediate", "good", "professional"}):
		return weight * 0.6
	case containsAny(text, []string{"basic", "limited", "beginner"}):
		return weight * 0.3
	default:
		return 0
	}
}

// timePoints maps weekly-time bands onto 10/6/3/0 scaled to the weight.
func timePoints(value string, weight float64) float64 {
	text := strings.ToLower(strings.TrimSpace(value))
	text = strings.NewReplacer("–", "-", "—", "-", "≥", ">=").Replace(text)

	// Range bands are matched before bare hour tokens: "2-3h" must not hit
	// the "3h" token, and "<1h" must not hit "1h".
	var band float64
	switch {
	case containsAny(text, []string{"<1", "less than 1", "0.5", "30 min"}):
		band = 0
	case containsAny(text, []string{"1-2", "1 to 2", "1.5"}):
		band = 3
	case containsAny(text, []string{"2-3", "2 to 3", "2.5"}):
		band = 6
	case containsAny(text, []string{">=3", "3+", "more than 3", "at least 3", "3 h", "3h"}):
		band = 10
	case containsAny(text, []string{"2 h", "2h"}):
		band = 6
	case containsAny(text, []string{"1 h", "1h"}):
		band = 3
	default:
		band = 0
	}

	return band * weight / 10
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
