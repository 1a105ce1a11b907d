package checks

import (
	"github.com/plancheck/plancheck/internal/assert"
	"github.com/plancheck/plancheck/internal/model"
	"github.com/plancheck/plancheck/internal/planfile"
	"github.com/plancheck/plancheck/internal/suite"
)

// WAF validates the web ACL: exactly one ACL with rules attached and the
// common managed rule set enabled.
func WAF() suite.Module {
	return suite.Module{
		Name:        "waf",
		Description: "WAF web ACL rules and managed rule groups",
		Cases: []suite.Case{
			{
				Name: "web_acl_declared",
				Check: func(snap *planfile.Snapshot) []model.AssertionResult {
					return []model.AssertionResult{
						assert.ResourceCount("acl_count", snap, "aws_wafv2_web_acl", 1, assert.CountEq),
					}
				},
			},
			{
				Name: "rules_attached",
				Check: func(snap *planfile.Snapshot) []model.AssertionResult {
					return []model.AssertionResult{
						assert.NotEmptyAt("rules", snap, "waf.web_acl.rules"),
						assert.PathExists("rate_limit", snap, "waf.web_acl.rules[0].name"),
					}
				},
			},
			{
				Name: "managed_rule_groups",
				Check: func(snap *planfile.Snapshot) []model.AssertionResult {
					return []model.AssertionResult{
						assert.ContainsAt("common_rule_set", snap, "waf.web_acl.managed_rule_groups", planfile.String("AWSManagedRulesCommonRuleSet")),
					}
				},
			},
		},
	}
}
