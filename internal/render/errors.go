package render

import (
	"errors"
	"fmt"
)

// Sentinel errors reported while building and rendering statements.
var (
	ErrMissingTable     = errors.New("missing table descriptor")
	ErrMissingSource    = errors.New("statement has no source")
	ErrNotRendered      = errors.New("statement has not been rendered")
	ErrCyclicSubquery   = errors.New("subquery references its own ancestor")
	ErrSubqueryDepth    = errors.New("subquery depth exceeded")
	ErrUnsupportedValue = errors.New("unsupported value type")
)

// ConfigurationError reports a malformed schema descriptor. It is never retryable.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %v", Dialect, e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(field string, err error) error {
	return &ConfigurationError{Field: field, Err: err}
}

// UnsupportedFeatureError indicates a construct the dialect cannot express.
type UnsupportedFeatureError struct {
	Feature string
	Hint    string
}

func (e UnsupportedFeatureError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s is not supported: %s", Dialect, e.Feature, e.Hint)
	}
	return fmt.Sprintf("%s: %s is not supported", Dialect, e.Feature)
}

// NewUnsupportedFeatureError creates a new unsupported feature error.
func NewUnsupportedFeatureError(feature string, hint ...string) error {
	err := UnsupportedFeatureError{Feature: feature}
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	return err
}
