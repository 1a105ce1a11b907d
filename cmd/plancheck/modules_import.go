package main

import (
	"github.com/plancheck/plancheck/internal/checks"
	"github.com/plancheck/plancheck/internal/logger"
	"github.com/plancheck/plancheck/internal/suite"
)

// RegisterModules installs the built-in test modules into the registry used
// by the CLI binary.
func RegisterModules(registry *suite.Registry, log *logger.Logger) error {
	if err := checks.Register(registry); err != nil {
		return err
	}

	log.WithFields(map[string]any{
		"modules": registry.Len(),
	}).Debug("test modules registered")

	return nil
}
