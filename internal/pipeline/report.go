package pipeline

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// RowError records one rejected input row. Only the row number, the stage
// name and the error category are kept; row contents never enter the report.
type RowError struct {
	Row   int
	Stage string
	Err   error
}

// Report collects row-level errors across a run.
type Report struct {
	Items []RowError
}

func NewReport() *Report {
	return &Report{}
}

func (r *Report) Add(row int, stage string, err error) {
	r.Items = append(r.Items, RowError{Row: row, Stage: stage, Err: err})
}

func (r *Report) Len() int {
	return len(r.Items)
}

// Rows lists the rejected source rows, in the order they were rejected.
func (r *Report) Rows() []int {
	rows := make([]int, 0, len(r.Items))
	for _, item := range r.Items {
		rows = append(rows, item.Row)
	}
	return rows
}

// WriteCSV writes the error report table.
func (r *Report) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Row", "Stage", "Error"}); err != nil {
		return err
	}
	for _, item := range r.Items {
		if err := writer.Write([]string{strconv.Itoa(item.Row), item.Stage, item.Err.Error()}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSVFile is WriteCSV over a file path.
func (r *Report) WriteCSVFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	return r.WriteCSV(file)
}
