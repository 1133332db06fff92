// Package verify provides checks that return errors instead of failing a
// test, so they can be returned from step functions.
//
//	khaos.Then(s, "the balance", func() (int, error) {
//		return balance, verify.Equal(10, balance)
//	})
package verify

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"

	"github.com/devicelab-dev/khaos/pkg/core"
)

func fail(format string, args ...any) error {
	return &core.VerificationError{Message: fmt.Sprintf(format, args...)}
}

// That verifies that err is nil. A non-nil err is wrapped in a
// *core.VerificationError carrying the message, if any.
func That(err error, message ...string) error {
	if err == nil {
		return nil
	}
	return &core.VerificationError{Message: strings.Join(message, " "), Cause: err}
}

// Equal verifies that actual deeply equals expected. Multi-line strings
// that differ are reported as a unified diff.
func Equal[T any](expected, actual T) error {
	if reflect.DeepEqual(expected, actual) {
		return nil
	}

	want, wantOK := any(expected).(string)
	got, gotOK := any(actual).(string)
	if wantOK && gotOK {
		if strings.Contains(want, "\n") || strings.Contains(got, "\n") {
			return fail("The value should match the expected text:\n%s", Diff(want, got))
		}
	}
	return fail("The value '%v' should match value '%v'.", actual, expected)
}

// NotEqual verifies that actual does not deeply equal unexpected.
func NotEqual[T any](unexpected, actual T) error {
	if !reflect.DeepEqual(unexpected, actual) {
		return nil
	}
	return fail("The value should not match value '%v'.", unexpected)
}

// True verifies that the expression is true.
func True(expression bool) error {
	if expression {
		return nil
	}
	return fail("The expression should be true.")
}

// False verifies that the expression is false.
func False(expression bool) error {
	if !expression {
		return nil
	}
	return fail("The expression should be false.")
}

// Nil verifies that v is nil, including typed nil pointers, maps, slices,
// channels, funcs and interfaces.
func Nil(v any) error {
	if isNil(v) {
		return nil
	}
	return fail("The value '%v' should be nil.", v)
}

// NotNil verifies that v is not nil.
func NotNil(v any) error {
	if !isNil(v) {
		return nil
	}
	return fail("The value should not be nil.")
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

// Contains verifies that s contains substr.
func Contains(s, substr string) error {
	if strings.Contains(s, substr) {
		return nil
	}
	return fail("The string should contain substring '%s'.", substr)
}

// StartsWith verifies that s starts with prefix.
func StartsWith(s, prefix string) error {
	if strings.HasPrefix(s, prefix) {
		return nil
	}
	return fail("The string should start with substring '%s'.", prefix)
}

// Empty verifies that s is empty.
func Empty(s string) error {
	if s == "" {
		return nil
	}
	return fail("The value '%s' should be empty.", s)
}

// NotBlank verifies that s contains something other than whitespace.
func NotBlank(s string) error {
	if strings.TrimSpace(s) != "" {
		return nil
	}
	return fail("The value '%s' should not be blank.", s)
}

// Panics verifies that fn panics.
func Panics(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = nil
		}
	}()
	fn()
	return fail("No panic occurred.")
}

// Fails verifies that fn returns an error and returns nil when it does.
func Fails(fn func() error) error {
	if fnErr := fn(); fnErr != nil {
		return nil
	}
	return fail("No error was returned.")
}

// FailsWith verifies that fn returns an error matching target.
func FailsWith(target error, fn func() error) error {
	fnErr := fn()
	switch {
	case fnErr == nil:
		return fail("No error was returned.")
	case errors.Is(fnErr, target):
		return nil
	default:
		return &core.VerificationError{Message: "An unexpected error was returned", Cause: fnErr}
	}
}

// Succeeds verifies that fn returns no error.
func Succeeds(fn func() error) error {
	if fnErr := fn(); fnErr != nil {
		return &core.VerificationError{Message: "An unexpected error was returned", Cause: fnErr}
	}
	return nil
}

// All runs every check and joins the failures. It returns nil when every
// check passed.
func All(checks ...error) error {
	var failed []error
	for _, c := range checks {
		if c != nil {
			failed = append(failed, c)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &core.VerificationError{Message: "Multiple errors have occurred", Cause: errors.Join(failed...)}
}

// Diff returns a unified diff from expected to actual.
func Diff(expected, actual string) string {
	if !strings.HasSuffix(expected, "\n") {
		expected += "\n"
	}
	if !strings.HasSuffix(actual, "\n") {
		actual += "\n"
	}
	edits := myers.ComputeEdits("", expected, actual)
	return fmt.Sprint(gotextdiff.ToUnified("expected", "actual", expected, edits))
}
