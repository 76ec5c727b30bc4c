package scoring

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Results is the collection of scored records for one run.
type Results struct {
	Items []*ScoredRecord
}

func (r *Results) Len() int {
	return len(r.Items)
}

func (r *Results) PIDs() []string {
	pids := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		pids = append(pids, item.PID)
	}
	return pids
}

// Derived columns that may be whitelisted for export beside the core set.
var derivedColumns = map[string]func(*ScoredRecord) string{
	"Sector":        func(r *ScoredRecord) string { return r.Sector },
	"Uplift":        func(r *ScoredRecord) string { return formatScore(r.Uplift) },
	"MotivationPts": func(r *ScoredRecord) string { return formatScore(r.Breakdown.Motivation) },
	"FunctionPts":   func(r *ScoredRecord) string { return formatScore(r.Breakdown.Function) },
	"RefereePts":    func(r *ScoredRecord) string { return formatScore(r.Breakdown.Referee) },
	"LanguagePts":   func(r *ScoredRecord) string { return formatScore(r.Breakdown.Language) },
	"TimePts":       func(r *ScoredRecord) string { return formatScore(r.Breakdown.Time) },
	"AlumniPts":     func(r *ScoredRecord) string { return formatScore(r.Breakdown.Alumni) },
}

// WriteCSV writes the redacted export table: PID, RFS, EquityFlag, Decision
// plus any whitelisted derived columns. There is no way to emit a raw input
// column from here; only derived values are addressable.
func (r *Results) WriteCSV(w io.Writer, whitelist []string) error {
	for _, column := range whitelist {
		if _, ok := derivedColumns[column]; !ok {
			return fmt.Errorf("unknown export column %q", column)
		}
	}

	writer := csv.NewWriter(w)

	header := append([]string{"PID", "RFS", "EquityFlag", "Decision"}, whitelist...)
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, item := range r.Items {
		row := []string{
			item.PID,
			formatScore(item.Total),
			strconv.FormatBool(item.EquityFlag),
			item.Decision,
		}
		for _, column := range whitelist {
			row = append(row, derivedColumns[column](item))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSVFile is WriteCSV over a file path.
func (r *Results) WriteCSVFile(path string, whitelist []string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	return r.WriteCSV(file, whitelist)
}

// ReportBySector groups scored records for the interactive report view.
func (r *Results) ReportBySector() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, item := range r.Items {
		report[item.Sector] = append(report[item.Sector], map[string]string{
			"pid":         item.PID,
			"rfs":         formatScore(item.Total),
			"decision":    item.Decision,
			"equity_flag": strconv.FormatBool(item.EquityFlag),
		})
	}
	return report
}

// DumpToTmpFile writes the scored records as indented JSON to a temp file and
// returns its name.
func (r *Results) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "rfs_scored_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
