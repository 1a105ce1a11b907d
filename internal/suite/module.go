// Package suite defines the test module contract: a named, fixed list of
// cases evaluated against the plan snapshot, plus the registry and the
// execution harness that runs a module within its timeout budget.
package suite

import (
	"github.com/plancheck/plancheck/internal/model"
	"github.com/plancheck/plancheck/internal/planfile"
)

// CheckFunc evaluates one test case against the read-only snapshot and
// returns its assertion results in invocation order.
type CheckFunc func(snap *planfile.Snapshot) []model.AssertionResult

// Case is the smallest independently-reported unit of validation. Cases in a
// module must not depend on each other: the snapshot is read-only and the
// harness gives no ordering guarantee beyond diagnostics.
type Case struct {
	Name  string
	Check CheckFunc
}

// Module is a named, fixed collection of cases validating one infrastructure
// concern. Declared once at registration time, never mutated during a run.
type Module struct {
	Name        string
	Description string
	Cases       []Case
}
