package cmd

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/arnab1811/rfs-tool/internal/applicant"
	"github.com/arnab1811/rfs-tool/internal/logger"
	"github.com/arnab1811/rfs-tool/internal/pseudonym"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Join scored results back to a local applications file into a contact list",
	Long: "Recomputes PIDs over the raw applications file with the same salt and " +
		"left-joins the scored table. This is the one deliberate re-identification " +
		"path; it only ever runs against the local applications file.",
	Run: func(cmd *cobra.Command, _ []string) {
		join(cmd)
	},
}

func init() {
	rootCmd.AddCommand(joinCmd)

	joinCmd.Flags().StringP("applications", "a", "", "raw applications CSV file")
	joinCmd.Flags().StringP("scored", "s", "rfs_scored.csv", "scored export CSV produced by the run command")
	joinCmd.Flags().StringP("output", "o", "contact_list.csv", "path for the contact list CSV")
}

// Columns the scored export must carry for the join.
var scoredJoinColumns = []string{"PID", "RFS", "Decision"}

func join(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	salt, err := resolveSalt(config)
	if err != nil {
		logger.Fatal(
			"loading pseudonymization salt",
			zap.Error(err),
			zap.String("hint", "the join must use the same salt as the scoring run"),
		)
	}

	hasher, err := pseudonym.New(salt)
	if err != nil {
		logger.Fatal("creating a hasher", zap.Error(err))
	}

	appsPath := cmd.Flag("applications").Value.String()
	if appsPath == "" {
		logger.Fatal("applications file is required", zap.String("hint", "pass the raw applications CSV via --applications"))
	}

	cols := config.Columns
	if cols == nil {
		cols = applicant.DefaultColumns()
	}

	apps, err := applicant.ReadTableFile(appsPath)
	if err != nil {
		logger.Fatal("reading applications file", zap.Error(err))
	}
	if apps.ColumnIndex(cols.Email) < 0 {
		logger.Fatal("email column not found in applications file",
			zap.String("column", cols.Email),
			zap.String("hint", "adjust the columns.email key in the configuration file"),
		)
	}

	scored, err := applicant.ReadTableFile(cmd.Flag("scored").Value.String())
	if err != nil {
		logger.Fatal("reading scored file", zap.Error(err))
	}
	for _, column := range scoredJoinColumns {
		if scored.ColumnIndex(column) < 0 {
			logger.Fatal("scored file is missing a required column", zap.String("column", column))
		}
	}

	output := cmd.Flag("output").Value.String()
	matched, unmatched, skipped, err := writeContactList(output, apps, scored, hasher, cols)
	if err != nil {
		logger.Fatal("writing contact list", zap.Error(err))
	}

	logger.Info("wrote contact list",
		zap.String("filename", output),
		zap.Int("matched", matched),
		zap.Int("unmatched", unmatched),
		zap.Int("skipped_invalid", skipped),
	)
}

type contactRow struct {
	cells    []string
	decision string
	rfs      float64
}

func writeContactList(path string, apps, scored *applicant.Table, hasher *pseudonym.Hasher, cols *applicant.Columns) (matched, unmatched, skipped int, err error) {
	scores := make(map[string][]string, len(scored.Rows))
	for _, row := range scored.Rows {
		scores[scored.Cell(row, "PID")] = row
	}

	// Keep the latest application per PID, matching the scoring run's
	// de-duplication: timestamp order when the column is mapped, input
	// order otherwise.
	byPID := make(map[string]int)

	type appEntry struct {
		pid   string
		row   []string
		ts    time.Time
		hasTS bool
	}
	entries := make([]appEntry, 0, len(apps.Rows))

	for _, row := range apps.Rows {
		pid, hashErr := hasher.PID(apps.Cell(row, cols.Email))
		if hashErr != nil {
			skipped++
			continue
		}
		ts, hasTS := applicant.ParseTimestamp(apps.Cell(row, cols.Timestamp))
		entry := appEntry{pid: pid, row: row, ts: ts, hasTS: hasTS}

		idx, seen := byPID[pid]
		if !seen {
			byPID[pid] = len(entries)
			entries = append(entries, entry)
			continue
		}

		current := entries[idx]
		replace := true
		if current.hasTS && hasTS {
			replace = !ts.Before(current.ts)
		}
		if replace {
			entries[idx] = entry
		}
	}

	rows := make([]contactRow, 0, len(entries))
	for _, entry := range entries {
		rfsValue := ""
		decision := ""
		if scoredRow, ok := scores[entry.pid]; ok {
			rfsValue = scored.Cell(scoredRow, "RFS")
			decision = scored.Cell(scoredRow, "Decision")
			matched++
		} else {
			unmatched++
		}

		row := contactRow{decision: decision}
		row.cells = append(row.cells, apps.Cell(entry.row, cols.Email), entry.pid, decision, rfsValue)
		for i, header := range apps.Header {
			if header == cols.Email {
				continue
			}
			value := ""
			if i < len(entry.row) {
				value = entry.row[i]
			}
			row.cells = append(row.cells, value)
		}

		if parsed, parseErr := strconv.ParseFloat(rfsValue, 64); parseErr == nil {
			row.rfs = parsed
		} else {
			row.rfs = math.Inf(-1)
		}

		rows = append(rows, row)
	}

	// Decision ascending, score descending. Unmatched rows carry an empty
	// decision and sort after every decided row.
	sort.SliceStable(rows, func(i, j int) bool {
		if (rows[i].decision == "") != (rows[j].decision == "") {
			return rows[j].decision == ""
		}
		if rows[i].decision != rows[j].decision {
			return rows[i].decision < rows[j].decision
		}
		return rows[i].rfs > rows[j].rfs
	})

	header := []string{cols.Email, "PID", "Decision", "RFS"}
	for _, name := range apps.Header {
		if name == cols.Email {
			continue
		}
		header = append(header, name)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, 0, 0, err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return 0, 0, 0, err
	}
	for _, row := range rows {
		if err := writer.Write(row.cells); err != nil {
			return 0, 0, 0, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, 0, 0, fmt.Errorf("flushing contact list: %w", err)
	}

	return matched, unmatched, skipped, nil
}
