package applicant

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExcludeByPID(t *testing.T) {
	t.Parallel()

	roster := &Roster{Items: []*Record{
		{Row: 1, PID: "aaa"},
		{Row: 2, PID: "bbb"},
		{Row: 3, PID: "ccc"},
	}}

	excluded := roster.Exclude(RecordPIDField, []string{"bbb", "zzz"})

	if len(excluded) != 1 || excluded[0] != 2 {
		t.Fatalf("unexpected excluded rows: %v", excluded)
	}
	if roster.Len() != 2 {
		t.Fatalf("expected 2 records left, got %d", roster.Len())
	}
	if roster.Items[0].PID != "aaa" || roster.Items[1].PID != "ccc" {
		t.Fatalf("exclude did not preserve order: %v, %v", roster.Items[0].PID, roster.Items[1].PID)
	}
}

func TestExcludeEmptyTargets(t *testing.T) {
	t.Parallel()

	roster := &Roster{Items: []*Record{{Row: 1, PID: "aaa"}}}
	if excluded := roster.Exclude(RecordPIDField, nil); excluded != nil {
		t.Fatalf("expected no exclusions, got %v", excluded)
	}
	if roster.Len() != 1 {
		t.Fatalf("expected roster untouched, got %d records", roster.Len())
	}
}

func TestDedupeByEmailKeepsLatestTimestamp(t *testing.T) {
	t.Parallel()

	roster := &Roster{Items: []*Record{
		{Row: 1, NormalizedEmail: "jane@org.com", Timestamp: "2024-01-12 10:00:00", Organization: "Newer"},
		{Row: 2, NormalizedEmail: "john@org.com", Timestamp: "2024-01-10 09:00:00"},
		{Row: 3, NormalizedEmail: "jane@org.com", Timestamp: "2024-01-11 08:00:00", Organization: "Older"},
	}}

	dropped := roster.DedupeByEmail()

	if dropped != 1 {
		t.Fatalf("expected 1 dropped duplicate, got %d", dropped)
	}
	if roster.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", roster.Len())
	}

	jane := roster.Items[0]
	if jane.NormalizedEmail != "jane@org.com" || jane.Organization != "Newer" {
		t.Fatalf("expected latest submission kept, got row %d (%q)", jane.Row, jane.Organization)
	}
}

func TestDedupeByEmailWithoutTimestampsKeepsLastRow(t *testing.T) {
	t.Parallel()

	roster := &Roster{Items: []*Record{
		{Row: 1, NormalizedEmail: "jane@org.com", Organization: "First"},
		{Row: 2, NormalizedEmail: "jane@org.com", Organization: "Second"},
	}}

	if dropped := roster.DedupeByEmail(); dropped != 1 {
		t.Fatalf("expected 1 dropped duplicate, got %d", dropped)
	}
	if roster.Items[0].Organization != "Second" {
		t.Fatalf("expected last row kept, got %q", roster.Items[0].Organization)
	}
}

func TestExcludedApplicantsRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "exclude.json")

	excluded := &ExcludedApplicants{Items: []*ExcludedApplicant{
		{PID: "aaa", Decision: "Admit", ExcludedAt: time.Now().UTC()},
	}}

	if err := excluded.ToFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := GetExcludedApplicantsFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded.Append(&ExcludedApplicants{Items: []*ExcludedApplicant{{PID: "bbb"}}})

	pids := loaded.PIDs()
	if len(pids) != 2 || pids[0] != "aaa" || pids[1] != "bbb" {
		t.Fatalf("unexpected pids: %v", pids)
	}
}

func TestExcludedApplicantsEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "exclude.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := GetExcludedApplicantsFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded.Items) != 0 {
		t.Fatalf("expected empty list, got %d items", len(loaded.Items))
	}
}
