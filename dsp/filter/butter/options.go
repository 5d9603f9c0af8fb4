package butter

// DefaultOrder is the filter order used when WithOrder is not supplied.
const DefaultOrder = 4

type config struct {
	lowCut  float64
	highCut float64
	hasLow  bool
	hasHigh bool
	order   int
}

// Option configures a design.
type Option func(*config)

func defaultConfig() config {
	return config{order: DefaultOrder}
}

// WithLowCut sets the lower band edge in Hz. On its own it selects a
// highpass design.
func WithLowCut(hz float64) Option {
	return func(cfg *config) {
		cfg.lowCut = hz
		cfg.hasLow = true
	}
}

// WithHighCut sets the upper band edge in Hz. On its own it selects a
// lowpass design.
func WithHighCut(hz float64) Option {
	return func(cfg *config) {
		cfg.highCut = hz
		cfg.hasHigh = true
	}
}

// WithOrder sets the filter order. An explicit order below 1, including 0, is
// rejected by Design rather than replaced with DefaultOrder.
func WithOrder(order int) Option {
	return func(cfg *config) {
		cfg.order = order
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
