// Package cmd provides the command-line interface for lanternfish.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sarchlab/lanternfish/config"
	"github.com/sarchlab/lanternfish/input"
)

// app holds what the commands share once the root command has started.
type app struct {
	cfgFile string
	envFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger

	// newLogger builds the logger. Tests replace it to silence output.
	newLogger func(verbose bool) (*zap.Logger, error)
}

func newProductionLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return cfg.Build()
}

// NewRootCommand creates the lanternfish command with all its subcommands.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{newLogger: newProductionLogger})
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lanternfish",
		Short: "Count how many lanternfish there are after a number of days.",
		Long: `lanternfish reads the timers of a school of lanternfish and ` +
			`counts the school after a number of days. Every fish spawns a ` +
			`new fish each 7 days; a newborn needs 2 more days for its first ` +
			`cycle.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setUp,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "YAML config file")
	flags.StringVar(&a.envFile, "env-file", ".env",
		"file of LANTERNFISH_ variables, ignored if missing")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")
	flags.Int("days", 0, "number of days (default from config, 80)")

	rootCmd.AddCommand(
		newCountCommand(a),
		newSimulateCommand(a),
		newTraceCommand(a),
		newReportCommand(a),
	)

	return rootCmd
}

// setUp loads the config, lets flags override it, and builds the logger.
func (a *app) setUp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}

	if err := cfg.ApplyEnv(a.envFile); err != nil {
		return err
	}

	if err := overrideFromFlags(cmd, cfg); err != nil {
		return err
	}

	if a.verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg

	a.logger, err = a.newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

func overrideFromFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	var err error

	if flags.Changed("days") {
		cfg.Days, err = flags.GetInt("days")
	}

	if err == nil && flags.Changed("method") {
		cfg.Method, err = flags.GetString("method")
	}

	if err == nil && flags.Changed("big") {
		cfg.Big, err = flags.GetBool("big")
	}

	if err == nil && flags.Changed("record") {
		cfg.Record, err = flags.GetBool("record")
	}

	if err == nil && flags.Changed("db") {
		cfg.RecordPath, err = flags.GetString("db")
		cfg.Record = true
	}

	if err == nil && flags.Changed("cpuprofile") {
		cfg.CPUProfile, err = flags.GetString("cpuprofile")
	}

	return err
}

// readAges reads the timers from the first argument, from stdin if it is
// "-", or from the configured input file.
func (a *app) readAges(cmd *cobra.Command, args []string) ([]int, error) {
	path := a.cfg.InputPath
	if len(args) > 0 {
		path = args[0]
	}

	if path == "-" {
		return input.ParseAges(cmd.InOrStdin())
	}

	return input.ReadAgesFile(path)
}

// Execute runs the lanternfish command and exits. Registered exit handlers,
// such as recorder flushes, run before the process exits.
func Execute() {
	err := NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
