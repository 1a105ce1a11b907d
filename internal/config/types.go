package config

import "time"

// Config is the runner configuration document (plancheck.yaml). CLI flags
// override individual fields after parsing.
type Config struct {
	Version  string   `yaml:"version" validate:"required,semver"`
	Plan     string   `yaml:"plan" validate:"required"`
	Settings Settings `yaml:"settings,omitempty"`
	Modules  []string `yaml:"modules,omitempty" validate:"omitempty,dive,module_name"`
}

// Settings holds global execution parameters. Timeouts are expressed in
// seconds in the document.
type Settings struct {
	Parallel      *bool  `yaml:"parallel,omitempty"`
	Workers       int    `yaml:"workers,omitempty" validate:"omitempty,min=1,max=64"`
	ModuleTimeout int    `yaml:"module_timeout,omitempty" validate:"omitempty,min=1,max=3600"`
	RunTimeout    int    `yaml:"run_timeout,omitempty" validate:"omitempty,min=1,max=86400"`
	Format        string `yaml:"format,omitempty" validate:"omitempty,oneof=structured human summary"`
	StatusFile    string `yaml:"status_file,omitempty"`
}

// ParallelMode reports the execution mode. Parallel is the documented
// default when the document leaves it unset.
func (s Settings) ParallelMode() bool {
	if s.Parallel == nil {
		return true
	}
	return *s.Parallel
}

// ModuleTimeoutDuration converts the per-module budget to a duration, zero
// when unset.
func (s Settings) ModuleTimeoutDuration() time.Duration {
	return time.Duration(s.ModuleTimeout) * time.Second
}

// RunTimeoutDuration converts the run budget to a duration, zero when unset.
func (s Settings) RunTimeoutDuration() time.Duration {
	return time.Duration(s.RunTimeout) * time.Second
}
