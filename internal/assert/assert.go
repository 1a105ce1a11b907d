// Package assert provides the primitive checks test cases run against a plan
// snapshot. Primitives are pure functions returning a model.AssertionResult;
// they never panic outward and never touch anything beyond the snapshot.
package assert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/plancheck/plancheck/internal/model"
	"github.com/plancheck/plancheck/internal/planfile"
	plancheckerrors "github.com/plancheck/plancheck/pkg/errors"
)

// Ordering selects how Equals compares composite values.
type Ordering int

const (
	// Ordered compares lists element by element in position.
	Ordered Ordering = iota
	// Unordered compares lists as multisets.
	Unordered
)

// CountCmp selects the comparison ResourceCount applies.
type CountCmp string

const (
	// CountEq requires an exact match.
	CountEq CountCmp = "eq"
	// CountGte requires at least the expected count.
	CountGte CountCmp = "gte"
	// CountLte requires at most the expected count.
	CountLte CountCmp = "lte"
)

const excerptLimit = 60

// guard converts a panic inside a primitive into an error-status result so a
// single broken assertion cannot take down its module.
func guard(name string, fn func() model.AssertionResult) (result model.AssertionResult) {
	defer func() {
		if r := recover(); r != nil {
			result = model.AssertionResult{
				Name:    name,
				Status:  model.StatusError,
				Message: fmt.Sprintf("assertion panicked: %v", r),
			}
		}
	}()
	return fn()
}

func pass(name, message string) model.AssertionResult {
	return model.AssertionResult{Name: name, Status: model.StatusPass, Message: message}
}

// Equals checks deep equality between actual and expected. For lists the
// ordering flag picks positional or multiset comparison. The failure message
// states both values verbatim.
func Equals(name string, actual, expected planfile.Value, ordering Ordering) model.AssertionResult {
	return guard(name, func() model.AssertionResult {
		if actual.Equal(expected, ordering == Ordered) {
			return pass(name, fmt.Sprintf("value equals %s", expected.Format()))
		}
		return model.AssertionResult{
			Name:     name,
			Status:   model.StatusFail,
			Message:  fmt.Sprintf("expected %s, got %s", expected.Format(), actual.Format()),
			Expected: expected.Format(),
			Actual:   actual.Format(),
		}
	})
}

// NotEmpty fails when the value is null, an empty string, or an empty
// container.
func NotEmpty(name string, value planfile.Value) model.AssertionResult {
	return guard(name, func() model.AssertionResult {
		if value.IsEmpty() {
			return model.AssertionResult{
				Name:    name,
				Status:  model.StatusFail,
				Message: fmt.Sprintf("expected non-empty value, got %s", value.Format()),
				Actual:  value.Format(),
			}
		}
		return pass(name, "value is not empty")
	})
}

// Contains checks substring containment for strings and element containment
// for lists. A haystack that is neither is a broken assertion, reported as
// error status.
func Contains(name string, haystack, needle planfile.Value) model.AssertionResult {
	return guard(name, func() model.AssertionResult {
		switch haystack.Kind() {
		case planfile.KindString:
			if needle.Kind() != planfile.KindString {
				return model.AssertionResult{
					Name:    name,
					Status:  model.StatusError,
					Message: fmt.Sprintf("needle must be a string when haystack is a string, got %s", needle.Kind()),
				}
			}
			if strings.Contains(haystack.Str(), needle.Str()) {
				return pass(name, fmt.Sprintf("string contains %s", needle.Format()))
			}
			return containsFailure(name, haystack, needle)
		case planfile.KindList:
			for _, item := range haystack.Items() {
				if item.Equal(needle, true) {
					return pass(name, fmt.Sprintf("list contains %s", needle.Format()))
				}
			}
			return containsFailure(name, haystack, needle)
		default:
			return model.AssertionResult{
				Name:    name,
				Status:  model.StatusError,
				Message: fmt.Sprintf("haystack must be a string or list, got %s", haystack.Kind()),
			}
		}
	})
}

func containsFailure(name string, haystack, needle planfile.Value) model.AssertionResult {
	rendered := haystack.Format()
	excerpt := rendered
	if len(excerpt) > excerptLimit {
		excerpt = excerpt[:excerptLimit-3] + "..."
	}
	return model.AssertionResult{
		Name:     name,
		Status:   model.StatusFail,
		Message:  fmt.Sprintf("%s not found in haystack (len %d): %s", needle.Format(), haystack.Len(), excerpt),
		Expected: needle.Format(),
		Actual:   excerpt,
	}
}

// PathExists checks that a path resolves in the snapshot. An absent path
// fails; malformed path syntax is an error, not a failure.
func PathExists(name string, snap *planfile.Snapshot, path string) model.AssertionResult {
	return guard(name, func() model.AssertionResult {
		_, err := snap.Lookup(path)
		return classifyLookup(name, path, err, func() model.AssertionResult {
			return model.AssertionResult{
				Name:    name,
				Status:  model.StatusPass,
				Message: fmt.Sprintf("path %s exists", path),
				Path:    path,
			}
		})
	})
}

// NotEmptyAt resolves a path and applies NotEmpty to the value found there.
// An absent path fails (the value is absent); malformed syntax is an error.
func NotEmptyAt(name string, snap *planfile.Snapshot, path string) model.AssertionResult {
	return guard(name, func() model.AssertionResult {
		value, err := snap.Lookup(path)
		return classifyLookup(name, path, err, func() model.AssertionResult {
			result := NotEmpty(name, value)
			result.Path = path
			return result
		})
	})
}

// ContainsAt resolves a path and applies Contains with the value found there
// as haystack. An absent path fails; malformed syntax is an error.
func ContainsAt(name string, snap *planfile.Snapshot, path string, needle planfile.Value) model.AssertionResult {
	return guard(name, func() model.AssertionResult {
		haystack, err := snap.Lookup(path)
		return classifyLookup(name, path, err, func() model.AssertionResult {
			result := Contains(name, haystack, needle)
			result.Path = path
			return result
		})
	})
}

// ValueAt resolves a path and compares the value found there against
// expected. An absent path yields error status: no actual value was
// resolved, so the comparison itself could not run.
func ValueAt(name string, snap *planfile.Snapshot, path string, expected planfile.Value) model.AssertionResult {
	return guard(name, func() model.AssertionResult {
		actual, err := snap.Lookup(path)
		if err != nil {
			if errors.Is(err, planfile.ErrNotFound) {
				return model.AssertionResult{
					Name:     name,
					Status:   model.StatusError,
					Message:  fmt.Sprintf("no value resolved at %s: %v", path, err),
					Path:     path,
					Expected: expected.Format(),
				}
			}
			return pathSyntaxError(name, path, err)
		}

		result := Equals(name, actual, expected, Ordered)
		result.Path = path
		return result
	})
}

// ResourceCount counts resources of resourceType in the snapshot and
// compares against expected using cmp.
func ResourceCount(name string, snap *planfile.Snapshot, resourceType string, expected int, cmp CountCmp) model.AssertionResult {
	return guard(name, func() model.AssertionResult {
		actual := len(snap.Resources(resourceType))

		var ok bool
		switch cmp {
		case CountEq:
			ok = actual == expected
		case CountGte:
			ok = actual >= expected
		case CountLte:
			ok = actual <= expected
		default:
			return model.AssertionResult{
				Name:    name,
				Status:  model.StatusError,
				Message: fmt.Sprintf("unknown count comparator %q", string(cmp)),
			}
		}

		if ok {
			return pass(name, fmt.Sprintf("%d resources of type %s (%s %d)", actual, resourceType, cmp, expected))
		}
		return model.AssertionResult{
			Name:     name,
			Status:   model.StatusFail,
			Message:  fmt.Sprintf("resource count for %s: expected %s %d, got %d", resourceType, cmp, expected, actual),
			Expected: fmt.Sprintf("%s %d", cmp, expected),
			Actual:   strconv.Itoa(actual),
		}
	})
}

func classifyLookup(name, path string, err error, onFound func() model.AssertionResult) model.AssertionResult {
	switch {
	case err == nil:
		return onFound()
	case errors.Is(err, planfile.ErrNotFound):
		return model.AssertionResult{
			Name:    name,
			Status:  model.StatusFail,
			Message: fmt.Sprintf("path %s is absent: %v", path, err),
			Path:    path,
		}
	default:
		return pathSyntaxError(name, path, err)
	}
}

func pathSyntaxError(name, path string, err error) model.AssertionResult {
	var pathErr *plancheckerrors.PathError
	message := err.Error()
	if errors.As(err, &pathErr) {
		message = pathErr.Error()
	}
	return model.AssertionResult{
		Name:    name,
		Status:  model.StatusError,
		Message: message,
		Path:    path,
	}
}
