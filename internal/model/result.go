package model

import (
	"sort"
	"time"
)

// Status is the outcome classification shared by assertions, cases, modules
// and the run as a whole.
type Status string

const (
	// StatusPass indicates the checked expectation held.
	StatusPass Status = "pass"
	// StatusFail indicates the actual value differed from the expectation.
	StatusFail Status = "fail"
	// StatusError indicates the check itself could not be evaluated
	// (malformed path, panic, timeout), distinct from a failed expectation.
	StatusError Status = "error"
)

// IsValid reports whether the status is one of the defined values.
func (s Status) IsValid() bool {
	switch s {
	case StatusPass, StatusFail, StatusError:
		return true
	default:
		return false
	}
}

// ExecutionMode records how modules were scheduled for a run.
type ExecutionMode string

const (
	// ModeParallel runs modules concurrently under a bounded worker pool.
	ModeParallel ExecutionMode = "parallel"
	// ModeSequential runs modules one at a time in declaration order.
	ModeSequential ExecutionMode = "sequential"
)

// AssertionResult is the atomic outcome of a single check.
type AssertionResult struct {
	Name     string
	Status   Status
	Message  string
	Path     string
	Expected string
	Actual   string
}

// CaseResult aggregates the assertions of one test case. Assertions are kept
// in invocation order for diagnostics.
type CaseResult struct {
	Name       string
	Status     Status
	Message    string
	Duration   time.Duration
	Assertions []AssertionResult
}

// DeriveCaseStatus computes a case status from its assertion results: any
// fail wins over error, any error wins over pass.
func DeriveCaseStatus(assertions []AssertionResult) Status {
	status := StatusPass
	for _, a := range assertions {
		switch a.Status {
		case StatusFail:
			return StatusFail
		case StatusError:
			status = StatusError
		}
	}
	return status
}

// ModuleResult captures the outcome of one test module. Cases preserve
// declaration order regardless of execution mode.
type ModuleResult struct {
	Module   string
	Status   Status
	Message  string
	Duration time.Duration
	Cases    []CaseResult
}

// CaseCount returns the number of cases the module reported.
func (m ModuleResult) CaseCount() int {
	return len(m.Cases)
}

// Counts returns the per-status case tally for the module.
func (m ModuleResult) Counts() (passed, failed, errored int) {
	for _, c := range m.Cases {
		switch c.Status {
		case StatusPass:
			passed++
		case StatusFail:
			failed++
		case StatusError:
			errored++
		}
	}
	return passed, failed, errored
}

// FailingCases returns the cases that did not pass, in declaration order.
func (m ModuleResult) FailingCases() []CaseResult {
	var failing []CaseResult
	for _, c := range m.Cases {
		if c.Status != StatusPass {
			failing = append(failing, c)
		}
	}
	return failing
}

// RunResult is the aggregate outcome of one engine run. It is constructed
// incrementally during execution and frozen by Finalize before it reaches
// the reporter.
type RunResult struct {
	StartedAt    time.Time
	Duration     time.Duration
	Mode         ExecutionMode
	DryRun       bool
	NoneSelected bool
	Modules      []ModuleResult

	TotalCases   int
	PassedCases  int
	FailedCases  int
	ErroredCases int

	finalized bool
}

// AddModule appends a module result. Panics if the run has been finalized;
// the reporter must never observe a mutating run.
func (r *RunResult) AddModule(m ModuleResult) {
	if r.finalized {
		panic("model: AddModule on finalized run result")
	}
	r.Modules = append(r.Modules, m)
}

// Finalize freezes the result: modules are sorted by name so output never
// depends on completion order, and aggregate counts are computed.
func (r *RunResult) Finalize() {
	if r.finalized {
		return
	}

	sort.Slice(r.Modules, func(i, j int) bool {
		return r.Modules[i].Module < r.Modules[j].Module
	})

	r.TotalCases = 0
	r.PassedCases = 0
	r.FailedCases = 0
	r.ErroredCases = 0
	for _, m := range r.Modules {
		passed, failed, errored := m.Counts()
		r.TotalCases += m.CaseCount()
		r.PassedCases += passed
		r.FailedCases += failed
		r.ErroredCases += errored
	}

	r.finalized = true
}

// Finalized reports whether the result has been frozen.
func (r *RunResult) Finalized() bool {
	return r.finalized
}

// AllPassed reports whether every case in every module passed. True for an
// empty selection.
func (r *RunResult) AllPassed() bool {
	return r.FailedCases == 0 && r.ErroredCases == 0
}

// ExitCode maps the run outcome to the process exit status: 0 when every
// case passed (or nothing was selected), 1 otherwise.
func (r *RunResult) ExitCode() int {
	if r.AllPassed() {
		return 0
	}
	return 1
}
