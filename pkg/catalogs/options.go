package catalogs

// Option defines a function that configures a catalog instance.
type Option func(*catalogOptions)

// catalogOptions holds catalog configuration.
type catalogOptions struct {
	path     string
	autoLoad bool
}

// catalogDefaults returns the default catalog options.
func catalogDefaults() *catalogOptions {
	return &catalogOptions{
		autoLoad: true,
	}
}

// apply applies options to the catalog configuration.
func (o *catalogOptions) apply(opts ...Option) *catalogOptions {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithPath configures the directory the catalog loads from and saves to.
func WithPath(path string) Option {
	return func(o *catalogOptions) {
		o.path = path
	}
}

// WithoutAutoLoad disables loading from disk during New. Save still
// writes to the configured path.
func WithoutAutoLoad() Option {
	return func(o *catalogOptions) {
		o.autoLoad = false
	}
}
