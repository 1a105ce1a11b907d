package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/plancheck/plancheck/internal/config"
	"github.com/plancheck/plancheck/internal/engine"
	"github.com/plancheck/plancheck/internal/logger"
	"github.com/plancheck/plancheck/internal/planfile"
	"github.com/plancheck/plancheck/internal/report"
	"github.com/plancheck/plancheck/internal/suite"
	plancheckerrors "github.com/plancheck/plancheck/pkg/errors"
)

type runOptions struct {
	ConfigPath string
	PlanPath   string
	Modules    []string
	Sequential bool
	Workers    int
	Timeout    time.Duration
	RunTimeout time.Duration
	DryRun     bool
	Format     string
	StatusFile string
	Verbose    bool

	configSet     bool
	parallelSet   bool
	sequentialSet bool
	workersSet    bool
	timeoutSet    bool
	runTimeoutSet bool
	formatSet     bool
}

var runCmdRunner = runRun

func newRunCmd(root *rootFlags, registry *suite.Registry) *cobra.Command {
	opts := runOptions{}
	var parallel bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run test modules against a rendered plan file",
		Long: `Run executes the registered test modules against a rendered plan document.
Modules run in parallel by default; flags override values from the
configuration file. Returns exit code 0 when every case passes, 1 when any
case fails or errors, 2 for configuration problems, and 3 when the plan
cannot be loaded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose = root.verbose
			opts.configSet = cmd.Flags().Changed("config")
			opts.parallelSet = cmd.Flags().Changed("parallel")
			opts.sequentialSet = cmd.Flags().Changed("sequential")
			opts.workersSet = cmd.Flags().Changed("workers")
			opts.timeoutSet = cmd.Flags().Changed("timeout")
			opts.runTimeoutSet = cmd.Flags().Changed("run-timeout")
			opts.formatSet = cmd.Flags().Changed("format")

			return runCmdRunner(cmd, opts, registry)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "plancheck.yaml", "Path to the runner configuration file")
	cmd.Flags().StringVar(&opts.PlanPath, "plan", "", "Path to the rendered plan JSON (overrides the config file)")
	cmd.Flags().StringArrayVar(&opts.Modules, "module", nil, "Module to run; repeat to select several (default: all)")
	cmd.Flags().BoolVar(&parallel, "parallel", true, "Run modules in parallel (the default)")
	cmd.Flags().BoolVar(&opts.Sequential, "sequential", false, "Run modules one at a time in registration order")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Parallel worker count; 0 selects the available parallelism")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "Timeout per module; accepts Go duration strings (e.g. 60s)")
	cmd.Flags().DurationVar(&opts.RunTimeout, "run-timeout", 5*time.Minute, "Timeout for the whole run")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Validate selection and plan loadability without executing cases")
	cmd.Flags().StringVar(&opts.Format, "format", "human", "Output format: structured, human or summary")
	cmd.Flags().StringVar(&opts.StatusFile, "status-file", "", "Write a machine-readable status artifact to this path")
	cmd.MarkFlagsMutuallyExclusive("parallel", "sequential")

	return cmd
}

// runSettings is the effective configuration after merging the config file
// with explicit flag overrides.
type runSettings struct {
	planPath      string
	modules       []string
	sequential    bool
	workers       int
	moduleTimeout time.Duration
	runTimeout    time.Duration
	format        report.Format
	statusFile    string
}

func resolveRunSettings(opts runOptions, cfg config.Config) (runSettings, error) {
	settings := runSettings{
		planPath:      cfg.Plan,
		modules:       cfg.Modules,
		sequential:    !cfg.Settings.ParallelMode(),
		workers:       cfg.Settings.Workers,
		moduleTimeout: opts.Timeout,
		runTimeout:    opts.RunTimeout,
		statusFile:    cfg.Settings.StatusFile,
	}

	if opts.PlanPath != "" {
		settings.planPath = opts.PlanPath
	}
	if settings.planPath == "" {
		return runSettings{}, plancheckerrors.NewConfigurationError("plan", "no plan file specified; set --plan or the plan field in the config file", nil)
	}

	if len(opts.Modules) > 0 {
		settings.modules = opts.Modules
	}
	if opts.sequentialSet {
		settings.sequential = true
	} else if opts.parallelSet {
		settings.sequential = false
	}
	if opts.workersSet {
		settings.workers = opts.Workers
	}
	if !opts.timeoutSet && cfg.Settings.ModuleTimeout > 0 {
		settings.moduleTimeout = cfg.Settings.ModuleTimeoutDuration()
	}
	if !opts.runTimeoutSet && cfg.Settings.RunTimeout > 0 {
		settings.runTimeout = cfg.Settings.RunTimeoutDuration()
	}
	if opts.StatusFile != "" {
		settings.statusFile = opts.StatusFile
	}

	formatName := cfg.Settings.Format
	if opts.formatSet || formatName == "" {
		formatName = opts.Format
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return runSettings{}, plancheckerrors.NewConfigurationError("format", err.Error(), err)
	}
	settings.format = format

	return settings, nil
}

func runRun(cmd *cobra.Command, opts runOptions, registry *suite.Registry) error {
	cfg := config.Config{}
	if opts.configSet || fileExists(opts.ConfigPath) {
		parsed, err := config.ParseConfig(opts.ConfigPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(2)
		}
		cfg = *parsed
	}

	settings, err := resolveRunSettings(opts, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	level := "info"
	if opts.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: settings.format != report.FormatStructured})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(3)
	}

	eng := engine.New(registry, planfile.NewStore(settings.planPath), log, engine.Options{
		Modules:       settings.modules,
		Sequential:    settings.sequential,
		Workers:       settings.workers,
		ModuleTimeout: settings.moduleTimeout,
		RunTimeout:    settings.runTimeout,
		DryRun:        opts.DryRun,
	})

	run, err := eng.Run(context.Background())
	if err != nil {
		var cfgErr *plancheckerrors.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(2)
		}

		fmt.Fprintf(os.Stderr, "Plan error: %v\n", err)
		os.Exit(3)
	}

	styled := settings.format == report.FormatHuman && isTerminal(cmd.OutOrStdout())
	out, err := report.Render(run, settings.format, report.Options{Styled: styled})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		os.Exit(3)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	if settings.statusFile != "" {
		if err := report.WriteStatus(settings.statusFile, run); err != nil {
			log.WithFields(map[string]any{"path": settings.statusFile}).Warn("failed to write status file: " + err.Error())
		}
	}

	os.Exit(run.ExitCode())
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isTerminal(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
