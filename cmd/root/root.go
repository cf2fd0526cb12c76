// Package root contains the root command for the application
package root

import (
	"fcastillo/sri-comprobantes/internal/clientes"
	"fcastillo/sri-comprobantes/internal/config"
	"fcastillo/sri-comprobantes/internal/export"
	"fcastillo/sri-comprobantes/internal/sri"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Dir      string
	Output   string
	Registry string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Config holds the resolved application configuration, populated
	// before any subcommand runs
	Config *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "comprobantes",
		Short: "A CLI tool to ingest SRI electronic receipts (comprobantes) from XML files.",
		Long: `comprobantes is a CLI tool that parses SRI comprobantes electrónicos
(facturas, notas de crédito/débito, retenciones, guías de remisión),
deduplicates them by clave de acceso, reconciles them against a client
registry and exports the results to CSV.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to comprobantes!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load environment and resolve configuration
			config.LoadEnv()
			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Error loading configuration: %v", err)
			}
			Config = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			// Set the configured logger for all packages
			sri.SetLogger(Log)
			clientes.SetLogger(Log)
			export.SetLogger(Log)

			// CSV_DELIMITER overrides the configured export delimiter
			if delim := config.GetEnv("CSV_DELIMITER", cfg.Export.Delimiter); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter")
				export.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Dir, "dir", "d", "", "Directory containing XML files")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Registry, "registry", "r", "", "Client registry YAML file")
}
