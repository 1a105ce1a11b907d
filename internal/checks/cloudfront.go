package checks

import (
	"github.com/plancheck/plancheck/internal/assert"
	"github.com/plancheck/plancheck/internal/model"
	"github.com/plancheck/plancheck/internal/planfile"
	"github.com/plancheck/plancheck/internal/suite"
)

// CloudFront validates the CDN distribution: modern TLS, HTTPS enforcement
// and at least one alias.
func CloudFront() suite.Module {
	return suite.Module{
		Name:        "cloudfront",
		Description: "CloudFront TLS policy and viewer behavior",
		Cases: []suite.Case{
			{
				Name: "distribution_declared",
				Check: func(snap *planfile.Snapshot) []model.AssertionResult {
					return []model.AssertionResult{
						assert.ResourceCount("distribution_count", snap, "aws_cloudfront_distribution", 1, assert.CountEq),
					}
				},
			},
			{
				Name: "tls_policy",
				Check: func(snap *planfile.Snapshot) []model.AssertionResult {
					return []model.AssertionResult{
						assert.ValueAt("minimum_protocol", snap, "cdn.distribution.viewer_certificate.minimum_protocol_version", planfile.String("TLSv1.2_2021")),
						assert.ValueAt("viewer_protocol", snap, "cdn.distribution.default_cache_behavior.viewer_protocol_policy", planfile.String("redirect-to-https")),
					}
				},
			},
			{
				Name: "aliases_configured",
				Check: func(snap *planfile.Snapshot) []model.AssertionResult {
					return []model.AssertionResult{
						assert.NotEmptyAt("aliases", snap, "cdn.distribution.aliases"),
						assert.ContainsAt("get_allowed", snap, "cdn.distribution.default_cache_behavior.allowed_methods", planfile.String("GET")),
					}
				},
			},
		},
	}
}
