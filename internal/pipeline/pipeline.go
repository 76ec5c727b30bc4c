// Package pipeline runs the scoring batch: sequential stages clean and
// pseudonymize the roster, then every surviving record is scored. Row-level
// problems land in the run report; only configuration and integrity errors
// abort the batch.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/arnab1811/rfs-tool/internal/applicant"
	"github.com/arnab1811/rfs-tool/internal/pseudonym"
	"github.com/arnab1811/rfs-tool/internal/scoring"
)

// Stage represents a single step applied to the roster before scoring.
type Stage interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(deps Deps) error
	Apply(ctx context.Context, deps Deps, r *applicant.Roster) (*applicant.Roster, Step, error)
}

// Deps aggregates dependencies shared across all stages.
type Deps struct {
	Hasher *pseudonym.Hasher
	Logger *zap.Logger
	Report *Report
}

// Step describes the result of executing a stage.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Run executes the supplied stages sequentially and scores the remaining
// records. The returned results hold one ScoredRecord per surviving row; the
// report in deps collects everything that was dropped along the way.
func Run(ctx context.Context, deps Deps, stages []Stage, scorer *scoring.Scorer, roster *applicant.Roster) (*scoring.Results, error) {
	for _, stage := range stages {
		if !stage.IsEnabled() {
			continue
		}
		if err := stage.Validate(deps); err != nil {
			return nil, fmt.Errorf("%s: %w", stage.Name(), err)
		}
	}

	for _, stage := range stages {
		if !stage.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Info("stage disabled", zap.String("name", stage.Name()))
			}
			continue
		}

		next, info, err := stage.Apply(ctx, deps, roster)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", stage.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Info("pipeline stage",
				zap.String("name", stage.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		roster = next
	}

	results := &scoring.Results{Items: make([]*scoring.ScoredRecord, 0, roster.Len())}
	for _, record := range roster.Items {
		scored := scorer.Score(ctx, record.PID, scoring.ExtractFeatures(record))
		results.Items = append(results.Items, scored)
	}

	return results, nil
}
