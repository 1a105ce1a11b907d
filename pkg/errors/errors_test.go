package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("plancheck.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "plancheck.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "plancheck.yaml")
}

func TestConfigurationErrorAggregatesFields(t *testing.T) {
	t.Parallel()

	err := NewConfigurationError("modules[1]", "unknown module \"cloudfrunt\"", nil)

	var configErr *ConfigurationError
	require.ErrorAs(t, err, &configErr)
	require.Equal(t, "modules[1]", configErr.Field)
	require.Contains(t, configErr.Message, "unknown module")
	require.Contains(t, err.Error(), "configuration error")
}

func TestPlanLoadErrorIncludesSourcePath(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("unexpected end of JSON input")
	err := NewPlanLoadError("plan.json", underlying)

	var loadErr *PlanLoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, "plan.json", loadErr.Path)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "plan load error")
}

func TestPathErrorDescribesExpression(t *testing.T) {
	t.Parallel()

	err := NewPathError("storage..bucket", "empty segment")

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "storage..bucket", pathErr.Path)
	require.Contains(t, err.Error(), "empty segment")
}

func TestExecutionErrorIncludesModuleContext(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("case panicked")
	err := NewExecutionError("s3", underlying)

	var executionErr *ExecutionError
	require.ErrorAs(t, err, &executionErr)
	require.Equal(t, "s3", executionErr.Module)
	require.True(t, stdErrors.Is(err, underlying))
}
