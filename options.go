package butterfly

// Option configures a subdivision pass.
//
// Example:
//
//	// Two butterfly passes, faces evaluated on all CPUs
//	fine, err := mesh.ButterflySubdivide(
//	    butterfly.WithIterations(2),
//	    butterfly.WithWorkers(0),
//	)
type Option func(*options)

type options struct {
	workers    int
	iterations int
}

// defaultOptions evaluates faces on the calling goroutine, one pass.
func defaultOptions() options {
	return options{
		workers:    1,
		iterations: 1,
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithWorkers sets how many goroutines evaluate faces. Zero or a negative
// value means GOMAXPROCS. The output mesh is the same for every setting.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithIterations sets how many times the scheme is applied, each pass
// feeding on the previous one's output. Values below 1 are treated as 1.
func WithIterations(n int) Option {
	return func(o *options) {
		o.iterations = max(n, 1)
	}
}
