package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/arnab1811/rfs-tool/internal/applicant"
	"github.com/arnab1811/rfs-tool/internal/pseudonym"
)

type validIdentifierStage struct{}

// NewValidIdentifier creates the stage that normalizes identifiers and drops
// rows with empty or malformed emails into the report.
func NewValidIdentifier() Stage {
	return &validIdentifierStage{}
}

func (s *validIdentifierStage) Name() string { return "valid_identifier" }

func (s *validIdentifierStage) Disable(string) {}

func (s *validIdentifierStage) IsEnabled() bool { return true }

func (s *validIdentifierStage) Validate(deps Deps) error {
	if deps.Report == nil {
		return errors.New("report is required")
	}
	return nil
}

func (s *validIdentifierStage) Apply(_ context.Context, deps Deps, r *applicant.Roster) (*applicant.Roster, Step, error) {
	initial := r.Len()

	kept := make([]*applicant.Record, 0, initial)
	for _, record := range r.Items {
		normalized := pseudonym.Normalize(record.Email)
		if err := pseudonym.ValidateEmail(normalized); err != nil {
			deps.Report.Add(record.Row, s.Name(), err)
			continue
		}
		record.NormalizedEmail = normalized
		kept = append(kept, record)
	}
	r.Items = kept

	return r, Step{Initial: initial, Dropped: initial - r.Len(), Left: r.Len()}, nil
}

type dedupeStage struct{}

// NewDedupe creates the stage that keeps one submission per applicant.
func NewDedupe() Stage {
	return &dedupeStage{}
}

func (s *dedupeStage) Name() string { return "dedupe" }

func (s *dedupeStage) Disable(string) {}

func (s *dedupeStage) IsEnabled() bool { return true }

func (s *dedupeStage) Validate(Deps) error { return nil }

func (s *dedupeStage) Apply(_ context.Context, deps Deps, r *applicant.Roster) (*applicant.Roster, Step, error) {
	initial := r.Len()
	dropped := r.DedupeByEmail()

	if deps.Logger != nil && dropped > 0 {
		deps.Logger.Info("de-duplicated repeated applicants",
			zap.Int("dropped", dropped),
			zap.String("rule", "kept last submission per email"),
		)
	}

	return r, Step{Initial: initial, Dropped: dropped, Left: r.Len()}, nil
}

type pseudonymizeStage struct{}

// NewPseudonymize creates the stage that assigns PIDs. A collision between
// distinct identifiers aborts the run.
func NewPseudonymize() Stage {
	return &pseudonymizeStage{}
}

func (s *pseudonymizeStage) Name() string { return "pseudonymize" }

func (s *pseudonymizeStage) Disable(string) {}

func (s *pseudonymizeStage) IsEnabled() bool { return true }

func (s *pseudonymizeStage) Validate(deps Deps) error {
	if deps.Hasher == nil {
		return errors.New("hasher is required")
	}
	return nil
}

func (s *pseudonymizeStage) Apply(_ context.Context, deps Deps, r *applicant.Roster) (*applicant.Roster, Step, error) {
	initial := r.Len()

	registry := pseudonym.NewRegistry()
	for _, record := range r.Items {
		pid, err := deps.Hasher.PID(record.NormalizedEmail)
		if err != nil {
			// Identifiers were validated upstream; a failure here means the
			// stage order is broken, not the data.
			return r, Step{}, err
		}
		if err := registry.Register(pid, record.NormalizedEmail); err != nil {
			return r, Step{}, err
		}
		record.PID = pid
	}

	return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
}

type excludeFileStage struct {
	path     string
	disabled bool
	reason   string
}

// NewExcludeFile creates the stage that removes applicants whose PIDs appear
// in the exclude file. Created disabled when no path is configured.
func NewExcludeFile(path string) Stage {
	stage := &excludeFileStage{path: path}
	if path == "" {
		stage.Disable("no exclude file configured")
	}
	return stage
}

func (s *excludeFileStage) Name() string { return "exclude_file" }

func (s *excludeFileStage) Disable(reason string) {
	s.disabled = true
	s.reason = reason
}

func (s *excludeFileStage) IsEnabled() bool { return !s.disabled }

func (s *excludeFileStage) Validate(Deps) error { return nil }

func (s *excludeFileStage) Apply(_ context.Context, deps Deps, r *applicant.Roster) (*applicant.Roster, Step, error) {
	initial := r.Len()

	excluded, err := applicant.GetExcludedApplicantsFromFile(s.path)
	if err != nil {
		return r, Step{}, err
	}

	removed := r.Exclude(applicant.RecordPIDField, excluded.PIDs())
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding previously handled applicants",
			zap.String("path", s.path),
			zap.Ints("excluded_rows", removed),
			zap.Int("applicants_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(removed), Left: r.Len()}, nil
}
