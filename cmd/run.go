package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/arnab1811/rfs-tool/internal/ai"
	"github.com/arnab1811/rfs-tool/internal/ai/gemini"
	"github.com/arnab1811/rfs-tool/internal/applicant"
	"github.com/arnab1811/rfs-tool/internal/logger"
	"github.com/arnab1811/rfs-tool/internal/pipeline"
	"github.com/arnab1811/rfs-tool/internal/pseudonym"
	"github.com/arnab1811/rfs-tool/internal/scoring"
	"github.com/arnab1811/rfs-tool/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes                 = "Write export CSV"
	PromptNo                  = "Exit without writing"
	PromptReportBySector      = "Report by sector"
	PromptScoredToFile        = "Dump scored records to file"
	PromptAppendToExcludeFile = "Append scored PIDs to exclude file"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptYes, PromptNo, PromptReportBySector, PromptScoredToFile, PromptAppendToExcludeFile},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Score an applications file and export pseudonymized results",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("input", "i", "", "applications CSV file to score")
	runCmd.Flags().StringP("output", "o", "rfs_scored.csv", "path for the scored export CSV")
	runCmd.Flags().BoolP("auto-approve", "y", false, "write the export without asking for confirmation")
	runCmd.Flags().StringP("exclude-file", "e", "", "special file with PIDs to exclude. Default is unset.")

	viper.BindPFlag("exclude-file", runCmd.Flags().Lookup("exclude-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the rfs-tool", zap.String("version", version))

	if config == nil {
		logger.Fatal("config is required")
	}

	// The config holds no secrets, only the path to them.
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	salt, err := resolveSalt(config)
	if err != nil {
		logger.Fatal(
			"loading pseudonymization salt",
			zap.Error(err),
			zap.String("hint", "set RFS_SALT_FILE environment variable or the 'salt-file' key in the configuration file"),
		)
	}

	hasher, err := pseudonym.New(salt)
	if err != nil {
		logger.Fatal("creating a hasher", zap.Error(err))
	}

	preset, err := scoring.PresetByName(config.Preset)
	if err != nil {
		logger.Fatal("resolving scoring preset", zap.Error(err))
	}

	input := cmd.Flag("input").Value.String()
	if input == "" {
		logger.Fatal("input file is required", zap.String("hint", "pass the applications CSV via --input"))
	}

	roster, err := applicant.ReadFile(input, config.Columns)
	if err != nil {
		logger.Fatal("reading applications file", zap.Error(err))
	}

	logger.Info("loaded applications", zap.Int("count", roster.Len()), zap.String("preset", preset.Name))

	if roster.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no applications found"))
		return
	}

	scorer, err := prepareScorer(ctx, config, preset, logger)
	if err != nil {
		logger.Fatal("preparing scorer", zap.Error(err))
	}

	report := pipeline.NewReport()
	deps := pipeline.Deps{
		Hasher: hasher,
		Logger: logger,
		Report: report,
	}

	stages := []pipeline.Stage{
		pipeline.NewValidIdentifier(),
		pipeline.NewDedupe(),
		pipeline.NewPseudonymize(),
		pipeline.NewExcludeFile(viper.GetString("exclude-file")),
	}

	results, err := pipeline.Run(ctx, deps, stages, scorer, roster)
	if err != nil {
		logger.Fatal("pipeline failed", zap.Error(err))
	}

	if report.Len() > 0 {
		logger.Warn("some rows were rejected",
			zap.Int("count", report.Len()),
			zap.Ints("rows", report.Rows()),
		)
	}

	if results.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no applicants left to score"))
		return
	}

	logger.Info("scored applicants", zap.Int("count", results.Len()))

	output := cmd.Flag("output").Value.String()

	action := PromptYes
	for {
		var err error
		if cmd.Flag("auto-approve").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		if err := handleAction(action, logger, config, results, report, output); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, results *scoring.Results, report *pipeline.Report, output string) error {
	switch action {
	case PromptYes:
		if err := writeExport(logger, config, results, report, output); err != nil {
			return err
		}
		return errExit
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportBySector:
		pretty, _ := json.MarshalIndent(results.ReportBySector(), "", "  ")
		logger.Info(string(pretty), zap.Int("applicants count", results.Len()))
		return nil
	case PromptScoredToFile:
		filename, err := results.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(logger, results)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func writeExport(logger *zap.Logger, config *Config, results *scoring.Results, report *pipeline.Report, output string) error {
	var whitelist []string
	if config.Export != nil {
		whitelist = config.Export.Whitelist
	}

	if err := results.WriteCSVFile(output, whitelist); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	logger.Info("wrote scored export", zap.String("filename", output), zap.Int("count", results.Len()))

	if report.Len() > 0 {
		errorsPath := output + ".errors.csv"
		if err := report.WriteCSVFile(errorsPath); err != nil {
			return fmt.Errorf("writing error report: %w", err)
		}
		logger.Info("wrote error report", zap.String("filename", errorsPath), zap.Int("count", report.Len()))
	}

	return nil
}

func appendToExcludeFile(logger *zap.Logger, results *scoring.Results) error {
	excludeFile := viper.GetString("exclude-file")
	if excludeFile == "" {
		return fmt.Errorf("exclude file is not configured")
	}

	excluded, err := applicant.GetExcludedApplicantsFromFile(excludeFile)
	if err != nil {
		return err
	}

	appended := &applicant.ExcludedApplicants{}
	for _, item := range results.Items {
		appended.Items = append(appended.Items, &applicant.ExcludedApplicant{
			PID:        item.PID,
			Decision:   item.Decision,
			ExcludedAt: time.Now().UTC(),
		})
	}
	excluded.Append(appended)

	if err := excluded.ToFile(excludeFile); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", excludeFile), zap.Int("count", results.Len()))
	return nil
}

func resolveSalt(config *Config) (string, error) {
	if config == nil {
		return "", errors.New("config is required")
	}

	saltFile := strings.TrimSpace(config.SaltFile)
	if saltFile == "" {
		saltFile = strings.TrimSpace(viper.GetString("salt-file"))
	}

	if saltFile == "" {
		return "", errors.New("pseudonymization salt file is not configured")
	}

	return secrets.Load(secrets.Source{
		Name: "pseudonymization salt",
		File: saltFile,
	})
}

func prepareScorer(ctx context.Context, config *Config, preset *scoring.Preset, logger *zap.Logger) (*scoring.Scorer, error) {
	opts := scoring.Options{}

	if config.Motivation != nil && config.Motivation.Enabled {
		opts.MotivationEnabled = true
	}

	if config.AI != nil && config.AI.Enabled {
		assessor, err := newAIAssessor(ctx, config.AI, logger)
		if err != nil {
			return nil, fmt.Errorf("building ai assessor: %w", err)
		}
		opts.MotivationEnabled = true
		opts.Assessor = assessor
	}

	return scoring.NewScorer(preset, opts, logger), nil
}

func newAIAssessor(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Assessor, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai assessment is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file)", err)
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAssessor(generator, cfg.Gemini.MaxLogLength, genLogger), nil
}
