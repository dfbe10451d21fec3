// Package errors is the single import for error handling across the module.
// Sentinel checks go through the standard library; anything created or
// wrapped here carries a pkg/errors stack trace.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

func New(text string) error {
	return stderrors.New(text)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}

func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// Wrap returns nil when err is nil.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack records the caller's stack on a sentinel or foreign error.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}
