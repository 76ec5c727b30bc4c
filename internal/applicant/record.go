// Package applicant holds the applicant roster: ingesting rows from a CSV
// export, mapping configured columns onto typed records and the collection
// operations the scoring pipeline works with.
package applicant

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

const (
	RecordPIDField   = "PID"
	RecordEmailField = "NormalizedEmail"
)

// ErrMissingRequiredField marks a required column that is absent from the
// input header.
var ErrMissingRequiredField = errors.New("missing required field")

// Columns maps logical field names onto the column headers of the input file.
// Only Email is required; unmapped optional fields score zero points.
type Columns struct {
	Email        string `mapstructure:"email"`
	Motivation   string `mapstructure:"motivation"`
	Function     string `mapstructure:"function"`
	Organization string `mapstructure:"organization"`
	Referee      string `mapstructure:"referee"`
	Language     string `mapstructure:"language"`
	Time         string `mapstructure:"time"`
	Alumni       string `mapstructure:"alumni"`
	Timestamp    string `mapstructure:"timestamp"`
}

// DefaultColumns returns the header names the original application form uses.
func DefaultColumns() *Columns {
	return &Columns{
		Email:        "Email",
		Motivation:   "Motivation",
		Function:     "Function",
		Organization: "Organisation",
		Referee:      "Referee",
		Language:     "Language",
		Time:         "WeeklyTime",
		Alumni:       "Alumni",
		Timestamp:    "Timestamp",
	}
}

// Record is a single applicant row after ingestion. Immutable by convention:
// the pipeline assigns NormalizedEmail and PID once and nothing mutates the
// raw fields afterwards.
type Record struct {
	// Row is the 1-based data row in the source file, used for error
	// reporting without exposing the row contents.
	Row int `mapstructure:"-"`

	Email        string `mapstructure:"email"`
	Motivation   string `mapstructure:"motivation"`
	Function     string `mapstructure:"function"`
	Organization string `mapstructure:"organization"`
	Referee      string `mapstructure:"referee"`
	Language     string `mapstructure:"language"`
	Time         string `mapstructure:"time"`
	Alumni       string `mapstructure:"alumni"`
	Timestamp    string `mapstructure:"timestamp"`

	// NormalizedEmail is set by the identifier validation stage.
	NormalizedEmail string `mapstructure:"-"`
	// PID is set by the pseudonymization stage.
	PID string `mapstructure:"-"`
}

// GetStringField returns the value of a named derived field. Used by
// Roster.Exclude to drop records by arbitrary field.
func (r *Record) GetStringField(name string) string {
	switch name {
	case RecordPIDField:
		return r.PID
	case RecordEmailField:
		return r.NormalizedEmail
	default:
		return ""
	}
}

// recordFromRow decodes a logical-name keyed row into a Record.
func recordFromRow(row map[string]string, line int) (*Record, error) {
	var record Record

	cfg := &mapstructure.DecoderConfig{
		Result:  &record,
		TagName: "mapstructure",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(row); err != nil {
		return nil, fmt.Errorf("decoding row %d: %w", line, err)
	}

	record.Row = line
	return &record, nil
}
