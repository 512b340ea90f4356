package ggicon

import "log/slog"

// Option configures a single Compose, Save or EncodeSVG call.
//
// Example:
//
//	// Default font resolution and package logger
//	r, err := ggicon.Compose(icon)
//
//	// Custom font resolution (dependency injection)
//	r, err := ggicon.Compose(icon, ggicon.WithFontResolver(myResolver))
type Option func(*options)

// options holds the per-call configuration.
type options struct {
	fonts  FontResolver
	logger *slog.Logger
}

// defaultOptions returns the default call options.
func defaultOptions() options {
	return options{
		fonts:  FontResolverFunc(ResolveFont),
		logger: nil, // Package logger at call time if nil
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return o
}

// WithFontResolver replaces ResolveFont for label and character glyph
// fonts. A nil resolver keeps the default.
func WithFontResolver(r FontResolver) Option {
	return func(o *options) {
		if r != nil {
			o.fonts = r
		}
	}
}

// WithLogger overrides the package logger for one call.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
