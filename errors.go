package fragql

import "github.com/zoobzio/fragql/internal/render"

// Re-export error values for use with errors.Is.
var (
	ErrMissingTable     = render.ErrMissingTable
	ErrMissingSource    = render.ErrMissingSource
	ErrNotRendered      = render.ErrNotRendered
	ErrCyclicSubquery   = render.ErrCyclicSubquery
	ErrSubqueryDepth    = render.ErrSubqueryDepth
	ErrUnsupportedValue = render.ErrUnsupportedValue
)

// ConfigurationError reports a malformed schema descriptor.
type ConfigurationError = render.ConfigurationError

// UnsupportedFeatureError indicates a construct MySQL cannot express.
type UnsupportedFeatureError = render.UnsupportedFeatureError
