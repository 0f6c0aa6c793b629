package atlaspack

// Option configures an Allocator during construction.
// Use functional options to customize Allocator behavior.
//
// Example:
//
//	// Default usage threshold (0.8)
//	a := atlaspack.New(1024, 1024)
//
//	// Custom usage threshold
//	a := atlaspack.New(1024, 1024, atlaspack.WithUsageThreshold(0.9))
type Option func(*options)

// options holds optional configuration for Allocator construction.
type options struct {
	usageThreshold float64
}

// defaultUsageThreshold is used when no WithUsageThreshold option is given.
const defaultUsageThreshold = 0.8

// defaultOptions returns the default allocator options.
func defaultOptions() options {
	return options{
		usageThreshold: defaultUsageThreshold,
	}
}

// WithUsageThreshold sets the ratio below which a rectangle would rather
// open a new shelf than reuse a taller existing one: when a new shelf
// would fit, a request of height h reuses the best existing shelf of
// height H only if h/H >= threshold. Values are clamped to [0, 1].
//
// Example:
//
//	a := atlaspack.New(1024, 1024, atlaspack.WithUsageThreshold(0.9))
func WithUsageThreshold(threshold float64) Option {
	return func(o *options) {
		switch {
		case threshold < 0:
			o.usageThreshold = 0
		case threshold > 1:
			o.usageThreshold = 1
		default:
			o.usageThreshold = threshold
		}
	}
}
