package applicant

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var headerSpace = regexp.MustCompile(`\s+`)

// cleanHeader collapses inner whitespace and trims the header cell. Form
// exports are full of stray spaces and trailing newlines.
func cleanHeader(name string) string {
	return strings.TrimSpace(headerSpace.ReplaceAllString(name, " "))
}

// Read parses an applications CSV into a Roster using the provided column
// mapping. Duplicate headers keep the first occurrence. The email column is
// required; every other mapping is optional and missing columns simply leave
// the field empty.
func Read(r io.Reader, cols *Columns) (*Roster, error) {
	if cols == nil {
		cols = DefaultColumns()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = cleanHeader(name)
		if _, ok := index[name]; ok {
			continue
		}
		index[name] = i
	}

	if strings.TrimSpace(cols.Email) == "" {
		return nil, fmt.Errorf("%w: email column is not configured", ErrMissingRequiredField)
	}
	if _, ok := index[cols.Email]; !ok {
		return nil, fmt.Errorf("%w: email column %q not found in input header", ErrMissingRequiredField, cols.Email)
	}

	mapping := map[string]string{
		"email":        cols.Email,
		"motivation":   cols.Motivation,
		"function":     cols.Function,
		"organization": cols.Organization,
		"referee":      cols.Referee,
		"language":     cols.Language,
		"time":         cols.Time,
		"alumni":       cols.Alumni,
		"timestamp":    cols.Timestamp,
	}

	roster := &Roster{}
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", line+1, err)
		}
		line++

		values := make(map[string]string, len(mapping))
		for field, column := range mapping {
			if column == "" {
				continue
			}
			idx, ok := index[column]
			if !ok || idx >= len(row) {
				continue
			}
			values[field] = row[idx]
		}

		record, err := recordFromRow(values, line)
		if err != nil {
			return nil, err
		}
		roster.Items = append(roster.Items, record)
	}

	return roster, nil
}

// ReadFile is Read over a file path.
func ReadFile(path string, cols *Columns) (*Roster, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file, cols)
}

// Table is a raw CSV table for operations that keep all original columns,
// such as the contact-list join.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTableFile loads a CSV file without any column mapping.
func ReadTableFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	for i, name := range header {
		header[i] = cleanHeader(name)
	}

	table := &Table{Header: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(table.Rows)+1, err)
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// ColumnIndex returns the position of a header name, or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, header := range t.Header {
		if header == name {
			return i
		}
	}
	return -1
}

// Cell returns the row value at the named column, tolerating short rows.
func (t *Table) Cell(row []string, name string) string {
	idx := t.ColumnIndex(name)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
