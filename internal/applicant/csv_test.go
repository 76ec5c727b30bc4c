package applicant

import (
	"errors"
	"strings"
	"testing"
)

func TestReadMapsConfiguredColumns(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"Timestamp, Email ,Organisation,Motivation",
		"2024/01/10 10:00:00,jane@org.com,Farmer Coop,\"I work with seed data\"",
		"2024/01/11 09:00:00,john@org.com,Acme Ltd,",
	}, "\n")

	roster, err := Read(strings.NewReader(input), DefaultColumns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if roster.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", roster.Len())
	}

	first := roster.Items[0]
	if first.Row != 1 {
		t.Fatalf("expected row 1, got %d", first.Row)
	}
	if first.Email != "jane@org.com" {
		t.Fatalf("unexpected email: %q", first.Email)
	}
	if first.Organization != "Farmer Coop" {
		t.Fatalf("unexpected organization: %q", first.Organization)
	}
	if first.Motivation != "I work with seed data" {
		t.Fatalf("unexpected motivation: %q", first.Motivation)
	}
}

func TestReadCleansMessyHeaders(t *testing.T) {
	t.Parallel()

	input := "  Email\t Address ,Organisation\njane@org.com,NGO Foundation\n"

	cols := DefaultColumns()
	cols.Email = "Email Address"

	roster, err := Read(strings.NewReader(input), cols)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if roster.Items[0].Email != "jane@org.com" {
		t.Fatalf("unexpected email: %q", roster.Items[0].Email)
	}
}

func TestReadDuplicateHeaderKeepsFirst(t *testing.T) {
	t.Parallel()

	input := "Email,Email\nfirst@org.com,second@org.com\n"

	roster, err := Read(strings.NewReader(input), DefaultColumns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if roster.Items[0].Email != "first@org.com" {
		t.Fatalf("expected first column to win, got %q", roster.Items[0].Email)
	}
}

func TestReadMissingEmailColumn(t *testing.T) {
	t.Parallel()

	input := "Organisation,Motivation\nAcme,text\n"

	_, err := Read(strings.NewReader(input), DefaultColumns())
	if !errors.Is(err, ErrMissingRequiredField) {
		t.Fatalf("expected ErrMissingRequiredField, got %v", err)
	}
}

func TestReadToleratesShortRows(t *testing.T) {
	t.Parallel()

	input := "Email,Organisation\njane@org.com\n"

	roster, err := Read(strings.NewReader(input), DefaultColumns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if roster.Items[0].Organization != "" {
		t.Fatalf("expected empty organization, got %q", roster.Items[0].Organization)
	}
}

func TestTableCell(t *testing.T) {
	t.Parallel()

	table := &Table{
		Header: []string{"Email", "RFS"},
		Rows:   [][]string{{"jane@org.com", "72.5"}, {"john@org.com"}},
	}

	if got := table.Cell(table.Rows[0], "RFS"); got != "72.5" {
		t.Fatalf("unexpected cell value: %q", got)
	}
	if got := table.Cell(table.Rows[1], "RFS"); got != "" {
		t.Fatalf("expected empty cell for short row, got %q", got)
	}
	if idx := table.ColumnIndex("PID"); idx != -1 {
		t.Fatalf("expected -1 for unknown column, got %d", idx)
	}
}
