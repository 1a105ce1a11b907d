package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	plancheckerrors "github.com/plancheck/plancheck/pkg/errors"
)

// ValidateConfig performs structural and cross-field validation on an entire
// runner configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return plancheckerrors.NewConfigurationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]struct{}, len(cfg.Modules))
	for i, name := range cfg.Modules {
		if _, exists := seen[name]; exists {
			return plancheckerrors.NewConfigurationError(
				fmt.Sprintf("modules[%d]", i),
				fmt.Sprintf("duplicate module %q", name),
				nil,
			)
		}
		seen[name] = struct{}{}
	}

	return nil
}

// convertValidationError flattens the validator's error list into the first
// offending field, which is actionable enough for a config document.
func convertValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		return plancheckerrors.NewConfigurationError(
			strings.ToLower(field),
			fmt.Sprintf("failed %q validation", fe.Tag()),
			err,
		)
	}
	return plancheckerrors.NewConfigurationError("config", err.Error(), err)
}
