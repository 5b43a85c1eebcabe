// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/shipsort/internal/config"
	"fjacquet/shipsort/internal/container"
	"fjacquet/shipsort/internal/logging"

	"github.com/spf13/cobra"
)

// ConfigEnvVar names the environment variable holding a config file path.
const ConfigEnvVar = "SHIPSORT_CONFIG"

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Output     string
	ConfigFile string
	LogLevel   string
}

var (
	// Log is the shared logger instance for commands. It is replaced by the
	// configured logger once the container is built.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded for the running command.
	AppConfig *config.Config

	// AppContainer holds the wired dependencies for the running command.
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "shipsort",
		Short: "A CLI tool to sort shipping records by customer.",
		Long: `shipsort reads shipping records from CSV, XLSX or XLS files, finds the
column naming the customer, and lets you search customers, list their
transactions and export per-customer invoices.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to shipsort!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			Shutdown()
		},
	}

	// SharedFlags holds the persistent flag values.
	SharedFlags = CommonFlags{}
)

func init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: search ./config.yaml, .shipsort/, $HOME/.shipsort/)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Override the configured log level")
}

// Initialize loads the environment and configuration and builds the
// container. The config file comes from --config, then SHIPSORT_CONFIG.
func Initialize() error {
	config.LoadEnv(Log)

	configFile := SharedFlags.ConfigFile
	if configFile == "" {
		configFile = config.GetEnv(ConfigEnvVar, "")
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()
	return nil
}

// Shutdown closes the container, if any.
func Shutdown() {
	if AppContainer == nil {
		return
	}
	if err := AppContainer.Close(); err != nil {
		Log.WithError(err).Warn("Failed to close container")
	}
}

// GetConfig returns the loaded configuration, or nil before Initialize.
func GetConfig() *config.Config {
	return AppConfig
}

// GetContainer returns the container, or nil before Initialize.
func GetContainer() *container.Container {
	return AppContainer
}

// GetLogger returns the command logger.
func GetLogger() logging.Logger {
	return Log
}
