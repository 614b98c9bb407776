package vidinfo

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT = "conflict"
	EEXTRACT  = "extract"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ELOOP     = "loop"
	ENOMATCH  = "no_match"
	ENOTFOUND = "not_found"
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract out the code & message.
//
// Expected marks conditions that are the user's or the remote site's fault
// (a page without a video, an unsupported URL) rather than a bug. Field is
// set on ENOTFOUND errors raised by the Field Extractor.
type Error struct {
	Code     string
	Message  string
	Field    string
	Expected bool
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("vidinfo error: code=%s field=%s message=%s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("vidinfo error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ExpectedErrorf returns an EEXTRACT error flagged as expected.
func ExpectedErrorf(format string, args ...any) *Error {
	e := Errorf(EEXTRACT, format, args...)
	e.Expected = true
	return e
}

// FieldNotFound returns the error raised when no pattern of a set matches
// for a required field.
func FieldNotFound(field string) *Error {
	return &Error{
		Code:    ENOTFOUND,
		Message: fmt.Sprintf("unable to extract %s", field),
		Field:   field,
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}

// ErrorField returns the field name carried by a FieldNotFound error.
func ErrorField(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

// IsExpected reports whether err is an application error flagged as expected.
func IsExpected(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Expected
	}
	return false
}
