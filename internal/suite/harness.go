package suite

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/plancheck/plancheck/internal/model"
	"github.com/plancheck/plancheck/internal/planfile"
)

// Run executes a module's cases in declaration order against the snapshot.
// Each case gets panic isolation: a fault in one case is recorded as error
// status and execution continues with the next. When the module exceeds its
// timeout, or the surrounding context is cancelled, cases that have not
// completed are marked error with the appropriate reason; completed results
// are preserved. The returned result always carries one entry per declared
// case.
func Run(ctx context.Context, mod Module, snap *planfile.Snapshot, timeout time.Duration) model.ModuleResult {
	start := time.Now()

	moduleCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		moduleCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	results := make([]model.CaseResult, len(mod.Cases))
	completed := make([]bool, len(mod.Cases))
	var mu sync.Mutex

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i, c := range mod.Cases {
			if moduleCtx.Err() != nil {
				return
			}
			res := runCase(c, snap)
			mu.Lock()
			results[i] = res
			completed[i] = true
			mu.Unlock()
		}
	}()

	select {
	case <-done:
	case <-moduleCtx.Done():
	}

	reason := incompleteReason(ctx, moduleCtx)

	mu.Lock()
	for i, c := range mod.Cases {
		if !completed[i] {
			results[i] = model.CaseResult{
				Name:    c.Name,
				Status:  model.StatusError,
				Message: reason,
			}
		}
	}
	final := make([]model.CaseResult, len(results))
	copy(final, results)
	mu.Unlock()

	return model.ModuleResult{
		Module:   mod.Name,
		Status:   moduleStatus(final),
		Message:  moduleMessage(final),
		Duration: time.Since(start),
		Cases:    final,
	}
}

// runCase executes one case with panic isolation and fills in derived
// status, message and duration.
func runCase(c Case, snap *planfile.Snapshot) (result model.CaseResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = model.CaseResult{
				Name:     c.Name,
				Status:   model.StatusError,
				Message:  fmt.Sprintf("case panicked: %v", r),
				Duration: time.Since(start),
			}
		}
	}()

	assertions := c.Check(snap)
	status := model.DeriveCaseStatus(assertions)

	message := ""
	switch status {
	case model.StatusPass:
		message = fmt.Sprintf("%d assertions passed", len(assertions))
	default:
		for _, a := range assertions {
			if a.Status != model.StatusPass {
				message = a.Message
				break
			}
		}
	}

	return model.CaseResult{
		Name:       c.Name,
		Status:     status,
		Message:    message,
		Duration:   time.Since(start),
		Assertions: assertions,
	}
}

func incompleteReason(parent, moduleCtx context.Context) string {
	switch {
	case parent.Err() != nil:
		return "run timeout exceeded"
	case moduleCtx.Err() != nil:
		return "module timeout exceeded"
	default:
		return "case did not complete"
	}
}

func moduleStatus(cases []model.CaseResult) model.Status {
	status := model.StatusPass
	for _, c := range cases {
		switch c.Status {
		case model.StatusFail:
			return model.StatusFail
		case model.StatusError:
			status = model.StatusError
		}
	}
	return status
}

func moduleMessage(cases []model.CaseResult) string {
	passed := 0
	for _, c := range cases {
		if c.Status == model.StatusPass {
			passed++
		}
	}
	if passed == len(cases) {
		return fmt.Sprintf("all %d cases passed", len(cases))
	}
	return fmt.Sprintf("%d of %d cases passed", passed, len(cases))
}
