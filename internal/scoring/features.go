package scoring

import (
	"github.com/arnab1811/rfs-tool/internal/applicant"
)

// Features is the only input the scorer accepts. The set of fields is fixed
// at build time; nothing outside this struct can influence a score, which is
// what keeps the model auditable.
type Features struct {
	Motivation   string
	Function     string
	Organization string
	Referee      string
	Language     string
	Time         string
	Alumni       string
}

// ExtractFeatures builds the scoring view of a record. This is the single
// place where applicant data crosses into the scorer.
func ExtractFeatures(r *applicant.Record) Features {
	return Features{
		Motivation:   r.Motivation,
		Function:     r.Function,
		Organization: r.Organization,
		Referee:      r.Referee,
		Language:     r.Language,
		Time:         r.Time,
		Alumni:       r.Alumni,
	}
}
