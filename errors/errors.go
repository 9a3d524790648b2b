// The errors package provides the error primitives shared by the decoder
// packages.
package errors

import (
	"strings"

	crdb "github.com/cockroachdb/errors"
)

func New(text string) error {
	return crdb.New(text)
}

func Newf(format string, args ...interface{}) error {
	return crdb.Newf(format, args...)
}

func Wrap(err error, msg string) error {
	return crdb.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...interface{}) error {
	return crdb.Wrapf(err, format, args...)
}

// Mark returns err marked so that Is reports it as equivalent to reference.
func Mark(err, reference error) error {
	return crdb.Mark(err, reference)
}

func Unwrap(err error) error {
	return crdb.UnwrapOnce(err)
}

func Is(err, target error) bool {
	return crdb.Is(err, target)
}

func As(err error, target interface{}) bool {
	return crdb.As(err, target)
}

// Errors is a list of errors.
type Errors []error

// Errors formats the list by separating each message with a newline. Each
// produced line, including lines within messages, is prefixed with a tab.
func (errs Errors) Error() string {
	switch len(errs) {
	case 0:
		return "no errors"
	case 1:
		return errs[0].Error()
	}
	var buf strings.Builder
	buf.WriteString("multiple errors:")
	for _, err := range errs {
		buf.WriteString("\n\t")
		buf.WriteString(strings.ReplaceAll(err.Error(), "\n", "\n\t"))
	}
	return buf.String()
}

// Append returns errs with each non-nil err appended to it. An err that is
// itself an Errors is flattened.
func (errs Errors) Append(err ...error) Errors {
	for _, err := range err {
		switch err := err.(type) {
		case nil:
		case Errors:
			errs = errs.Append(err...)
		default:
			errs = append(errs, err)
		}
	}
	return errs
}

// Return prepares errs to be returned by a function by returning nil if errs is
// empty.
func (errs Errors) Return() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Unwrap exposes the list to the standard library's multi-error traversal.
func (errs Errors) Unwrap() []error {
	return errs
}

// Union receives a number of errors and combines them into one Errors. Returns
// nil if all errs are nil or empty.
func Union(errs ...error) error {
	return Errors(nil).Append(errs...).Return()
}

// Contains reports whether err, or any member of err if it is an Errors,
// matches target.
func Contains(err, target error) bool {
	if list, ok := err.(Errors); ok {
		for _, err := range list {
			if Contains(err, target) {
				return true
			}
		}
		return false
	}
	return err != nil && Is(err, target)
}
