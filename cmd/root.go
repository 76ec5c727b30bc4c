package cmd

import (
	"log"

	"github.com/arnab1811/rfs-tool/internal/applicant"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "rfs-tool"
)

type Config struct {
	SaltFile    string             `mapstructure:"salt-file"`
	Preset      string             `mapstructure:"preset"`
	ExcludeFile string             `mapstructure:"exclude-file"`
	Columns     *applicant.Columns `mapstructure:"columns"`
	Export      *struct {
		Whitelist []string
	}
	Motivation *struct {
		Enabled bool
	}
	AI *AIConfig `mapstructure:"ai"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "rfs-tool scores recruitment applications and exports pseudonymized results",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("salt-file", "RFS_SALT_FILE"); err != nil {
		log.Fatalf("binding RFS_SALT_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is rfs-tool.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config is needed only for the run and join commands. Without one we
	// can skip initialization.
	if runCmd.CalledAs() == "" && joinCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
