package urltemplate

// Option configures substitution.
type Option func(*options)

type options struct {
	strict bool
}

// WithStrict rejects placeholders whose name is absent from
// the parameters with an UnknownPlaceholder error instead of
// substituting the empty string. Brace syntax errors are
// still reported first.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

func buildOptions(opts []Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
