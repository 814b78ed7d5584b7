package pdf

type config struct {
	wrapColumns int
	title       string
}

// Option configures an Engine.
type Option func(*config)

// WithWrapColumns sets the description wrap width in characters.
func WithWrapColumns(columns int) Option {
	return func(c *config) {
		c.wrapColumns = columns
	}
}

// WithTitle overrides the document heading.
func WithTitle(title string) Option {
	return func(c *config) {
		c.title = title
	}
}

func newConfig(options ...Option) config {
	var cfg config
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
