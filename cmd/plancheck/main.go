package main

import (
	"fmt"
	"os"

	"github.com/plancheck/plancheck/internal/logger"
	"github.com/plancheck/plancheck/internal/suite"
)

func main() {
	log, err := logger.New(logger.Options{Level: "info", HumanReadable: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	registry := suite.NewRegistry()
	if err := RegisterModules(registry, log); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register test modules: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd(registry).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
