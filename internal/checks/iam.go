package checks

import (
	"github.com/plancheck/plancheck/internal/assert"
	"github.com/plancheck/plancheck/internal/model"
	"github.com/plancheck/plancheck/internal/planfile"
	"github.com/plancheck/plancheck/internal/suite"
)

// IAM validates role hygiene: a bounded number of roles, a deploy role with
// an assume-role policy, and no wildcard grants flagged by the exporter.
func IAM() suite.Module {
	return suite.Module{
		Name:        "iam",
		Description: "IAM role count and policy hygiene",
		Cases: []suite.Case{
			{
				Name: "role_count_bounded",
				Check: func(snap *planfile.Snapshot) []model.AssertionResult {
					return []model.AssertionResult{
						assert.ResourceCount("role_count", snap, "aws_iam_role", 10, assert.CountLte),
					}
				},
			},
			{
				Name: "deploy_role_present",
				Check: func(snap *planfile.Snapshot) []model.AssertionResult {
					return []model.AssertionResult{
						assert.PathExists("deploy_role", snap, "iam.roles.deploy"),
						assert.NotEmptyAt("assume_policy", snap, "iam.roles.deploy.assume_role_policy"),
					}
				},
			},
			{
				Name: "no_wildcard_grants",
				Check: func(snap *planfile.Snapshot) []model.AssertionResult {
					return []model.AssertionResult{
						assert.ValueAt("wildcard_actions", snap, "iam.policy.allows_wildcard_actions", planfile.Bool(false)),
					}
				},
			},
		},
	}
}
