// Package checks holds the built-in validation modules. Each module groups
// related expectations about a rendered plan document into named cases, and
// assumes the layout produced by the plan exporter: a top-level "resources"
// list plus per-concern objects ("storage", "cdn", "waf", "iam",
// "monitoring").
package checks

import (
	"github.com/plancheck/plancheck/internal/suite"
)

// All returns every built-in module in registration order.
func All() []suite.Module {
	return []suite.Module{
		S3(),
		CloudFront(),
		WAF(),
		IAM(),
		Monitoring(),
	}
}

// Register adds every built-in module to the registry.
func Register(reg *suite.Registry) error {
	for _, mod := range All() {
		if err := reg.Register(mod); err != nil {
			return err
		}
	}
	return nil
}
