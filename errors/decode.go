package errors

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	// Indicates that a read would cross the end of the byte region, or that
	// a declared count or size is implausible.
	ErrCorruptData = New("corrupt data")
	// Indicates that bulk data is absent from the package and must be
	// fetched from a side file.
	ErrTruncatedPayload = New("truncated payload")
	// Indicates a reference index with no matching export.
	ErrUnresolvedReference = New("unresolved reference")
	// Indicates an object type name that no kind is registered for.
	ErrUnknownType = New("unknown object type")
	// Indicates bulk data compressed with a method that cannot be expanded.
	ErrUnsupportedCompression = New("unsupported compression")
)

// Corrupt returns an error at offset that matches ErrCorruptData.
func Corrupt(offset int64, format string, args ...interface{}) error {
	return DataError{Offset: offset, Cause: Wrapf(ErrCorruptData, format, args...)}
}

// DataError wraps an error that occurred while decoding byte data.
type DataError struct {
	// Offset is the byte offset where the error occurred.
	Offset int64

	Cause error
}

func (err DataError) Error() string {
	var s strings.Builder
	s.WriteString("data error")
	if err.Offset >= 0 {
		s.WriteString(" at ")
		s.Write(strconv.AppendInt(nil, err.Offset, 10))
	}
	if err.Cause != nil {
		s.WriteString(": ")
		s.WriteString(err.Cause.Error())
	}
	return s.String()
}

func (err DataError) Unwrap() error {
	return err.Cause
}

// PropertyError indicates a problem with a single tagged property. The
// property was skipped and decoding continued after it.
type PropertyError struct {
	// Name is the name of the property.
	Name string
	// Offset is the position of the property value.
	Offset int64

	Cause error
}

func (err PropertyError) Error() string {
	return fmt.Sprintf("property %q at %d: %s", err.Name, err.Offset, err.Cause)
}

func (err PropertyError) Unwrap() error {
	return err.Cause
}

// BoundaryError reports that an object's decode did not end at its stopper.
// The cursor was forced to the stopper afterwards.
type BoundaryError struct {
	// Tell is the cursor position when decoding stopped.
	Tell int64
	// Stopper is the expected end of the object.
	Stopper int64

	// Cause is the error that stopped decoding early, or nil if decoding
	// completed but left bytes unread.
	Cause error
}

// Skipped returns the number of bytes that were jumped over.
func (err BoundaryError) Skipped() int64 {
	if err.Tell < err.Stopper {
		return err.Stopper - err.Tell
	}
	return 0
}

func (err BoundaryError) Error() string {
	if err.Cause == nil {
		return fmt.Sprintf("%d unread bytes before stopper %d", err.Skipped(), err.Stopper)
	}
	return fmt.Sprintf("decoding stopped at %d, skipped %d bytes to stopper %d: %s", err.Tell, err.Skipped(), err.Stopper, err.Cause)
}

func (err BoundaryError) Unwrap() error {
	return err.Cause
}

// ObjectError indicates an error that occurred within one object of a
// package.
type ObjectError struct {
	// Index is the position of the object within the export table.
	Index int
	// Type is the type name of the object.
	Type string
	// Name is the name of the object.
	Name string

	Cause error
}

func (err ObjectError) Error() string {
	if err.Index < 0 {
		return fmt.Sprintf("%s %q: %s", err.Type, err.Name, err.Cause)
	}
	return fmt.Sprintf("#%d %s %q: %s", err.Index, err.Type, err.Name, err.Cause)
}

func (err ObjectError) Unwrap() error {
	return err.Cause
}
