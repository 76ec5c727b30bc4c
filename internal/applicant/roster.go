package applicant

import (
	"time"
)

// Roster is the working set of applicant records for one run.
type Roster struct {
	Items []*Record
}

func (r *Roster) Len() int {
	return len(r.Items)
}

// Exclude removes records whose named field matches one of the targets and
// returns the source rows of the removed records. Order of the remaining
// records is preserved.
func (r *Roster) Exclude(name string, targets []string) []int {
	if len(targets) == 0 {
		return nil
	}

	drop := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		drop[target] = struct{}{}
	}

	var excluded []int
	kept := make([]*Record, 0, len(r.Items))
	for _, record := range r.Items {
		if _, ok := drop[record.GetStringField(name)]; ok {
			excluded = append(excluded, record.Row)
			continue
		}
		kept = append(kept, record)
	}
	r.Items = kept

	return excluded
}

// Timestamp layouts seen in form exports. Google Forms first.
var timestampLayouts = []string{
	"2006/01/02 3:04:05 PM MST",
	"2006/01/02 15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// ParseTimestamp parses a form-export timestamp, trying the known layouts.
func ParseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// DedupeByEmail keeps one record per normalized email and returns the number
// of dropped duplicates. The submission with the latest parseable timestamp
// wins; between unparseable timestamps the later row wins. Records must have
// NormalizedEmail set.
func (r *Roster) DedupeByEmail() int {
	type candidate struct {
		record *Record
		ts     time.Time
		hasTS  bool
	}

	latest := make(map[string]candidate, len(r.Items))
	order := make([]string, 0, len(r.Items))

	for _, record := range r.Items {
		key := record.NormalizedEmail
		ts, hasTS := ParseTimestamp(record.Timestamp)

		current, seen := latest[key]
		if !seen {
			latest[key] = candidate{record: record, ts: ts, hasTS: hasTS}
			order = append(order, key)
			continue
		}

		replace := true
		if current.hasTS && hasTS {
			replace = !ts.Before(current.ts)
		}
		if replace {
			latest[key] = candidate{record: record, ts: ts, hasTS: hasTS}
		}
	}

	dropped := len(r.Items) - len(order)
	kept := make([]*Record, 0, len(order))
	for _, key := range order {
		kept = append(kept, latest[key].record)
	}
	r.Items = kept

	return dropped
}
