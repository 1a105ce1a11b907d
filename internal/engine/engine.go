// Package engine orchestrates a plancheck run: module selection, the one-time
// plan load, parallel or sequential scheduling, timeout enforcement, and
// aggregation of module results into a finalized run result.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/plancheck/plancheck/internal/logger"
	"github.com/plancheck/plancheck/internal/model"
	"github.com/plancheck/plancheck/internal/planfile"
	"github.com/plancheck/plancheck/internal/suite"
)

// Options configures one run.
type Options struct {
	// Modules filters the registered set; empty means all modules.
	Modules []string
	// Sequential runs modules one at a time in declaration order instead
	// of the default bounded-parallel scheduling.
	Sequential bool
	// Workers bounds parallel execution. Zero or negative selects the
	// available parallelism.
	Workers int
	// ModuleTimeout bounds each module's execution. Zero disables it.
	ModuleTimeout time.Duration
	// RunTimeout bounds the whole execution phase. Zero disables it.
	RunTimeout time.Duration
	// DryRun validates selection and plan loadability without executing
	// any case.
	DryRun bool
}

// Engine drives a run against a module registry and a plan store.
type Engine struct {
	registry *suite.Registry
	store    *planfile.Store
	logger   *logger.Logger
	opts     Options
}

// New creates an engine. A nil logger is replaced with a noop one.
func New(registry *suite.Registry, store *planfile.Store, log *logger.Logger, opts Options) *Engine {
	if log == nil {
		log = logger.Noop()
	}
	return &Engine{registry: registry, store: store, logger: log, opts: opts}
}

// Run executes the selected modules and returns the finalized run result.
// Selection and plan-load failures are fatal: they return an error and no
// result. Once execution begins, every outcome is captured in the result and
// the error return stays nil.
func (e *Engine) Run(ctx context.Context) (*model.RunResult, error) {
	mode := model.ModeParallel
	if e.opts.Sequential {
		mode = model.ModeSequential
	}

	run := &model.RunResult{
		StartedAt: time.Now(),
		Mode:      mode,
		DryRun:    e.opts.DryRun,
	}

	selected, err := e.selectModules()
	if err != nil {
		return nil, err
	}

	if len(selected) == 0 {
		e.logger.Warn("no test modules selected")
		run.NoneSelected = true
		run.Finalize()
		return run, nil
	}

	e.logger.WithFields(map[string]any{
		"modules": len(selected),
		"mode":    string(mode),
		"dry_run": e.opts.DryRun,
	}).Info("starting run")

	snap, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	if e.opts.DryRun {
		run.Duration = time.Since(run.StartedAt)
		run.Finalize()
		return run, nil
	}

	execCtx := ctx
	if e.opts.RunTimeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, e.opts.RunTimeout)
		defer cancel()
	}

	results := make([]model.ModuleResult, len(selected))
	if e.opts.Sequential {
		for i, mod := range selected {
			results[i] = e.runModule(execCtx, mod, snap)
		}
	} else {
		workers := e.opts.Workers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}

		grp, grpCtx := errgroup.WithContext(execCtx)
		grp.SetLimit(workers)
		for i, mod := range selected {
			grp.Go(func() error {
				results[i] = e.runModule(grpCtx, mod, snap)
				return nil
			})
		}
		// Tasks never return errors; faults become module results.
		_ = grp.Wait()
	}

	for _, res := range results {
		run.AddModule(res)
	}

	run.Duration = time.Since(run.StartedAt)
	run.Finalize()

	e.logger.WithFields(map[string]any{
		"total":    run.TotalCases,
		"passed":   run.PassedCases,
		"failed":   run.FailedCases,
		"errored":  run.ErroredCases,
		"duration": run.Duration.String(),
	}).Info("run complete")

	return run, nil
}

// selectModules resolves the configured filter against the registry. An
// unknown name fails fast before anything executes.
func (e *Engine) selectModules() ([]suite.Module, error) {
	if len(e.opts.Modules) == 0 {
		return e.registry.All(), nil
	}

	selected := make([]suite.Module, 0, len(e.opts.Modules))
	for _, name := range e.opts.Modules {
		mod, err := e.registry.Get(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, mod)
	}
	return selected, nil
}

// runModule executes one module with harness-level fault isolation: a crash
// outside case logic becomes a module result with every case marked error,
// never an aborted run.
func (e *Engine) runModule(ctx context.Context, mod suite.Module, snap *planfile.Snapshot) (result model.ModuleResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithFields(map[string]any{"module": mod.Name}).Error(fmt.Errorf("%v", r), "module crashed")
			result = faultResult(mod, fmt.Sprintf("module crashed: %v", r))
		}
	}()

	e.logger.WithFields(map[string]any{"module": mod.Name}).Debug("running module")
	result = suite.Run(ctx, mod, snap, e.opts.ModuleTimeout)

	if result.Status != model.StatusPass {
		e.logger.WithFields(map[string]any{
			"module": mod.Name,
			"status": string(result.Status),
		}).Warn(result.Message)
	}
	return result
}

func faultResult(mod suite.Module, message string) model.ModuleResult {
	cases := make([]model.CaseResult, len(mod.Cases))
	for i, c := range mod.Cases {
		cases[i] = model.CaseResult{
			Name:    c.Name,
			Status:  model.StatusError,
			Message: message,
		}
	}
	return model.ModuleResult{
		Module:  mod.Name,
		Status:  model.StatusError,
		Message: message,
		Cases:   cases,
	}
}
