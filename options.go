package fixarena

import "log/slog"

type options struct {
	logger *slog.Logger
	name   string
}

// Option configures a Restartable or SafeRestartable.
type Option func(*options)

// WithLogger sets the logger used for restart, rebind and reclaim events.
// A nil logger leaves logging disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithName tags every log record with an "arena" attribute.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.name != "" {
		o.logger = o.logger.With("arena", o.name)
	}
	return o
}
