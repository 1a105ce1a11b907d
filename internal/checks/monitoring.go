package checks

import (
	"github.com/plancheck/plancheck/internal/assert"
	"github.com/plancheck/plancheck/internal/model"
	"github.com/plancheck/plancheck/internal/planfile"
	"github.com/plancheck/plancheck/internal/suite"
)

// Monitoring validates the alerting surface: alarms exist, the error-rate
// alarm notifies somewhere, and the dashboard is named.
func Monitoring() suite.Module {
	return suite.Module{
		Name:        "monitoring",
		Description: "CloudWatch alarms and dashboard",
		Cases: []suite.Case{
			{
				Name: "alarms_declared",
				Check: func(snap *planfile.Snapshot) []model.AssertionResult {
					return []model.AssertionResult{
						assert.ResourceCount("alarm_count", snap, "aws_cloudwatch_metric_alarm", 1, assert.CountGte),
					}
				},
			},
			{
				Name: "error_rate_alarm",
				Check: func(snap *planfile.Snapshot) []model.AssertionResult {
					return []model.AssertionResult{
						assert.PathExists("alarm_present", snap, "monitoring.alarms.error_rate"),
						assert.NotEmptyAt("alarm_actions", snap, "monitoring.alarms.error_rate.actions"),
					}
				},
			},
			{
				Name: "dashboard_named",
				Check: func(snap *planfile.Snapshot) []model.AssertionResult {
					return []model.AssertionResult{
						assert.NotEmptyAt("dashboard_name", snap, "monitoring.dashboard.name"),
					}
				},
			},
		},
	}
}
