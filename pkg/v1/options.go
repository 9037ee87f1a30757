package v1

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	tablePath string
	dimension int
	strict    bool
	metric    string
	warnf     func(format string, args ...any)
}

// WithTablePath sets the embeddings file to load.
func WithTablePath(path string) Option {
	return func(c *clientConfig) {
		c.tablePath = path
	}
}

// WithDimension pins the expected vector dimension.
func WithDimension(dim int) Option {
	return func(c *clientConfig) {
		c.dimension = dim
	}
}

// WithStrict makes malformed embedding rows fatal instead of skipped.
func WithStrict() Option {
	return func(c *clientConfig) {
		c.strict = true
	}
}

// WithMetric selects the comparison metric ("cosine" or "euclidean").
func WithMetric(metric string) Option {
	return func(c *clientConfig) {
		c.metric = metric
	}
}

// WithWarnf routes skipped-row and unknown-word warnings somewhere.
// They are discarded by default.
func WithWarnf(warnf func(format string, args ...any)) Option {
	return func(c *clientConfig) {
		c.warnf = warnf
	}
}
