package codec

// Option configures NewStruct and NewEnum.
type Option func(*options)

type options struct {
	name     string
	noSchema bool
}

// WithName registers the type under name instead of its Go type name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithoutSchema skips schema artifact generation for the type.
func WithoutSchema() Option {
	return func(o *options) {
		o.noSchema = true
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
