package conversion

// Option applies a configuration option to the Registry.
type Option func(*Registry)

// WithConversion registers fn for the ordered pair p. A later registration
// for the same pair replaces the earlier one.
func WithConversion(p Pair, fn Func) Option {
	return func(r *Registry) {
		if fn != nil && p.From.Valid() && p.To.Valid() && p.From != p.To {
			r.funcs[p] = fn
		}
	}
}

// WithDefaultConversions registers the built-in formulas.
func WithDefaultConversions() Option {
	return func(r *Registry) {
		for p, fn := range builtin() {
			r.funcs[p] = fn
		}
	}
}
