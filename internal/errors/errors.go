// Package errors is the single errors import for application code. Checks go
// to the standard library and constructors go to pkg/errors for stack traces.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

func New(text string) error { return pkgerrors.New(text) }

func Is(err, target error) bool { return stderrors.Is(err, target) }

// AsType returns the first error in err's tree of type T.
func AsType[T error](err error) (T, bool) {
	var target T
	ok := stderrors.As(err, &target)

	return target, ok
}

// Wrap, Wrapf and WithStack return nil for a nil err.
func Wrap(err error, message string) error { return pkgerrors.Wrap(err, message) }

func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

func WithStack(err error) error { return pkgerrors.WithStack(err) }

func Errorf(format string, args ...any) error { return pkgerrors.Errorf(format, args...) }

// Cause unwraps pkg/errors annotations down to the original error.
//
//nolint:wrapcheck // passthrough
func Cause(err error) error { return pkgerrors.Cause(err) }
