package filter

// Option applies a configuration option to the filter.
type Option func(*substringFilter)

// WithWords replaces the blocked terms. A nil slice keeps the defaults; an empty
// non-nil slice disables filtering.
func WithWords(words []string) Option {
	return func(f *substringFilter) {
		if words != nil {
			f.words = normalize(words)
		}
	}
}

// WithExtraWords appends terms to the current list.
func WithExtraWords(words ...string) Option {
	return func(f *substringFilter) {
		f.words = normalize(append(f.Words(), words...))
	}
}
