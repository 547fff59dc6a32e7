package bimultimap

type options struct {
	logger        *Logger
	keyCapacity   int
	valueCapacity int
}

// Option configures constructor behavior.
//
// Today options primarily exist to avoid exploding the API surface
// (e.g. capacity-specific constructor variants).
type Option func(*options)

// WithLogger configures the logger used for debug-level diagnostics such as
// bulk-removal strategy selection.
//
// If nil is passed, logging stays disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithKeyCapacity sizes the key index for an expected number of distinct
// keys, avoiding rehashing during initial load.
func WithKeyCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.keyCapacity = n
		}
	}
}

// WithValueCapacity sizes the value index for an expected number of distinct
// values.
func WithValueCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.valueCapacity = n
		}
	}
}
