package core

// Logger is the structured logging surface used by the components. It is
// satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsRecorder counts component operations.
type MetricsRecorder interface {
	Observe(component, operation string)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

type noopMetricsRecorder struct{}

func (noopMetricsRecorder) Observe(string, string) {}

// Option configures a component.
type Option func(*options)

type options struct {
	logger         Logger
	metrics        MetricsRecorder
	underThreshold float64
	overThreshold  float64
}

// WithLogger sets the component logger. A nil logger is ignored.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the recorder that counts component operations. A nil
// recorder is ignored.
func WithMetrics(metrics MetricsRecorder) Option {
	return func(o *options) {
		if metrics != nil {
			o.metrics = metrics
		}
	}
}

// WithThresholds overrides the BudgetAnalyzer's default under- and
// over-utilization thresholds. Other components ignore it.
func WithThresholds(under, over float64) Option {
	return func(o *options) {
		o.underThreshold = under
		o.overThreshold = over
	}
}

func buildOptions(opts []Option) options {
	cfg := options{
		logger:         noopLogger{},
		metrics:        noopMetricsRecorder{},
		underThreshold: DefaultUnderThreshold,
		overThreshold:  DefaultOverThreshold,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
