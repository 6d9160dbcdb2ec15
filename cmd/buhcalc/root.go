package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iwvelando/buhcalc/internal/calc"
	"github.com/iwvelando/buhcalc/internal/config"
	"github.com/iwvelando/buhcalc/pkg/constants"
	"github.com/iwvelando/buhcalc/pkg/output"
	"github.com/iwvelando/buhcalc/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfgFile          string
	logLevelOverride string
	outputFormatFlag string
)

// Shared state prepared by the root command before any subcommand runs.
var (
	conf         *config.Configuration
	logger       *zap.Logger
	engine       *calc.Engine
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "buhcalc",
	Short: "Payroll and tax calculator for the Irkutsk region",
	Long: `buhcalc computes salaries with the regional coefficient and northern
allowance, progressive income tax, insurance contributions, VAT and
transport tax using the 2026 Irkutsk region rate tables.

Examples:
  buhcalc salary --territory Д --base 50000 --allowance 30
  buhcalc contributions --monthly 300000 --schedule
  buhcalc vat --amount 100000 --rate 22 --output-format csv
  buhcalc serve --server-config server-config.yaml`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to configuration file (default "+constants.DefaultConfigFile+" when present)")
	rootCmd.PersistentFlags().StringVar(&logLevelOverride, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&outputFormatFlag, "output-format", "", "type of output override: pretty, csv")

	rootCmd.AddCommand(salaryCmd)
	rootCmd.AddCommand(incomeTaxCmd)
	rootCmd.AddCommand(contributionsCmd)
	rootCmd.AddCommand(vatCmd)
	rootCmd.AddCommand(transportCmd)
	rootCmd.AddCommand(usnCmd)
	rootCmd.AddCommand(territoriesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration, builds the logger and binds the engine to the
// configured rate tables.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	conf, err = config.LoadConfiguration(configPath())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err = initializeLogger(conf.Logging, logLevelOverride)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	outputFormat = conf.Output.Format
	if outputFormatFlag != "" {
		outputFormat = outputFormatFlag
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Error(err.Error(),
			zap.String("op", "main.setup"),
		)
		return err
	}

	tables, err := conf.LoadRates()
	if err != nil {
		logger.Fatal("failed to load rate tables",
			zap.String("op", "main.setup"),
			zap.String("file", conf.Rates.File),
			zap.Error(err),
		)
	}
	engine, err = calc.NewEngine(tables)
	if err != nil {
		logger.Fatal("failed to initialize calculator",
			zap.String("op", "main.setup"),
			zap.Error(err),
		)
	}

	logger.Debug("calculator ready",
		zap.String("op", "main.setup"),
		zap.String("region", tables.Region),
		zap.Int("year", tables.Year),
	)
	return nil
}

// configPath prefers an explicit --config, then the default file when it exists.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if _, err := os.Stat(constants.DefaultConfigFile); errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	return constants.DefaultConfigFile
}

// render writes a result in the selected output format.
func render(cmd *cobra.Command, result any, opts output.Options) error {
	return output.Write(cmd.OutOrStdout(), outputFormat, result, opts)
}

// inputFailure logs a rejected input and returns an error carrying the hint.
func inputFailure(op string, err error) error {
	var inputErr *calc.InputError
	if errors.As(err, &inputErr) {
		logger.Info("input rejected",
			zap.String("op", op),
			zap.String("field", inputErr.Field),
			zap.String("value", inputErr.Value),
		)
		return fmt.Errorf("%w; %s", err, inputErr.Hint)
	}
	logger.Error("calculation failed",
		zap.String("op", op),
		zap.Error(err),
	)
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "buhcalc %s\n", version)
		return err
	},
}
