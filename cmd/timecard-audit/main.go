package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/timecard-audit/internal/adapters/report"
	"github.com/ogurasousui/timecard-audit/internal/adapters/sheet"
	"github.com/ogurasousui/timecard-audit/internal/core/audit"
	"github.com/ogurasousui/timecard-audit/internal/core/timecard"
	"github.com/ogurasousui/timecard-audit/internal/platform/config"
	"github.com/ogurasousui/timecard-audit/internal/platform/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfigPath = "assets/local.yaml"

type options struct {
	configPath  string
	identity    string
	sheet       string
	format      string
	verbose     bool
	diagnostics bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "timecard-audit [file]",
		Short: "Flag employees whose shifts break the timecard policy",
		Long: `timecard-audit reads a timecard export (xlsx or csv) and lists employees who
worked 7 consecutive days, took a break between 1 and 10 hours between shifts,
or worked more than 14 hours in a single shift. Thresholds come from the config file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args, stdout, stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to config file (defaults to CONFIG_PATH env or "+defaultConfigPath+")")
	flags.StringVar(&opts.identity, "identity", "", `group rows by employee "id" or "name"`)
	flags.StringVar(&opts.sheet, "sheet", "", "worksheet name (defaults to the first sheet)")
	flags.StringVar(&opts.format, "format", "", `input format "xlsx" or "csv" (defaults to the file extension)`)
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&opts.diagnostics, "diagnostics", false, "print skipped rows to stderr after the report")

	return cmd
}

func run(ctx context.Context, opts *options, args []string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if err := applyOverrides(cfg, opts, args); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	strategy, err := timecard.ParseIdentityStrategy(cfg.Source.Identity)
	if err != nil {
		return err
	}

	src, err := sheet.NewSource(cfg.Source)
	if err != nil {
		return err
	}

	logger.Debug("loading timecard", zap.String("path", cfg.Source.Path), zap.String("format", cfg.Source.Format))

	svc := audit.NewService(rulesFromConfig(cfg.Rules), strategy, logger, nil)
	result, err := svc.Run(ctx, src)
	if err != nil {
		logger.Error("timecard audit failed", zap.Error(err))
		return err
	}

	if err := report.WriteText(stdout, result); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if opts.diagnostics {
		if err := report.WriteDiagnostics(stderr, result.Diagnostics); err != nil {
			return fmt.Errorf("write diagnostics: %w", err)
		}
	}
	return nil
}

func loadConfig(flagValue string) (*config.Config, error) {
	path, explicit := effectiveConfigPath(flagValue)
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, err
}

func effectiveConfigPath(flagValue string) (string, bool) {
	if flagValue != "" {
		return flagValue, true
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env, true
	}
	return defaultConfigPath, false
}

func applyOverrides(cfg *config.Config, opts *options, args []string) error {
	if len(args) > 0 {
		cfg.Source.Path = args[0]
		cfg.Source.Format = ""
	}
	if opts.format != "" {
		cfg.Source.Format = opts.format
	}
	if opts.sheet != "" {
		cfg.Source.Sheet = opts.sheet
	}
	if opts.identity != "" {
		cfg.Source.Identity = opts.identity
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg.Normalize()
}

func rulesFromConfig(r config.RulesConfig) audit.Rules {
	return audit.Rules{
		ConsecutiveDays: r.ConsecutiveDays,
		MinBreakHours:   r.MinBreakHours,
		MaxBreakHours:   r.MaxBreakHours,
		MaxShiftHours:   r.MaxShiftHours,
	}
}
