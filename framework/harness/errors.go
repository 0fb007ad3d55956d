package harness

import (
	"errors"
	"fmt"
	"strings"
)

// TransportError means that a request could not be completed at the network level, as
// opposed to the service returning an HTTP error status. A 4xx or 5xx response is never
// reported as a TransportError.
type TransportError struct {
	Method  string
	URL     string
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s %s: timed out: %s", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TemplateResolutionError means that a path template referred to a parameter that was
// not provided.
type TemplateResolutionError struct {
	Template string
	Missing  []string
}

func (e *TemplateResolutionError) Error() string {
	return fmt.Sprintf("path template %q has no value for parameter(s): %s",
		e.Template, strings.Join(e.Missing, ", "))
}

// UnrecognizedFieldError means that a field map contained keys that the target resource
// does not define.
type UnrecognizedFieldError struct {
	Resource string
	Fields   []string
}

func (e *UnrecognizedFieldError) Error() string {
	return fmt.Sprintf("unrecognized field(s) for %s: %s", e.Resource, strings.Join(e.Fields, ", "))
}

// FixtureError means that a fixture file could not be read or parsed.
type FixtureError struct {
	Path string
	Err  error
}

func (e *FixtureError) Error() string {
	return fmt.Sprintf("fixture %s: %s", e.Path, e.Err)
}

func (e *FixtureError) Unwrap() error { return e.Err }

// ConfigurationError is a problem with how a test was declared rather than with the
// service under test. It stops the whole scenario.
type ConfigurationError struct {
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// IsConfigurationError returns true if the error, or anything it wraps, is one of the
// configuration-class errors: ConfigurationError, TemplateResolutionError,
// UnrecognizedFieldError, or FixtureError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	var te *TemplateResolutionError
	var ue *UnrecognizedFieldError
	var fe *FixtureError
	return errors.As(err, &ce) || errors.As(err, &te) || errors.As(err, &ue) || errors.As(err, &fe)
}

// IsTransportError returns true if the error, or anything it wraps, is a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
