package vizmatch

import "github.com/stereosat/micmac-pipeline/pkg/vizmatch/measure"

// Option configures a Pipeline.
type Option func(p *Pipeline)

// Parallel dispatches pairs to a worker pool instead of rendering them one at
// a time in enumeration order.
func Parallel() Option {
	return func(p *Pipeline) {
		p.parallel = true
	}
}

// Workers sets the worker pool size used when the pipeline runs in parallel.
// Values below 1 keep the default, the number of CPUs.
func Workers(workers int) Option {
	return func(p *Pipeline) {
		if workers > 0 {
			p.workers = workers
		}
	}
}

// Progress registers a hook invoked on every pair state change. The hook runs
// on worker goroutines, so it must be safe for concurrent use when the
// pipeline runs in parallel.
func Progress(hook func(Event)) Option {
	return func(p *Pipeline) {
		p.progress = hook
	}
}

// PipelineMeasure records one metric per pair into msr, holding the render
// duration of that pair.
func PipelineMeasure(msr measure.Measure) Option {
	return func(p *Pipeline) {
		p.measure = msr
	}
}
