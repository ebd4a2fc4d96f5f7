package vizmatch

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/stereosat/micmac-pipeline/pkg/vizmatch/measure"
)

// Pipeline renders one figure per image pair of a project.
//
// The sequential path processes pairs in enumeration order and aborts the
// batch on the first missing match record or renderer failure. The parallel
// path keeps the same per pair checks but dispatches pairs to a fixed size
// worker pool: the first failure cancels the dispatch of remaining pairs and
// is returned by Run, while renders already in flight run to completion.
type Pipeline struct {
	project  *Project
	renderer Renderer
	progress func(Event)
	measure  measure.Measure
	workers  int
	parallel bool
}

// New creates a pipeline over project using renderer.
func New(project *Project, renderer Renderer, opts ...Option) (*Pipeline, error) {
	if project == nil {
		return nil, ErrProjectMustBeSet
	}
	if renderer == nil {
		return nil, ErrRendererMustBeSet
	}

	pipe := &Pipeline{
		project:  project,
		renderer: renderer,
		workers:  runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(pipe)
	}

	return pipe, nil
}

// Run renders every pair and waits for completion. The output directory is
// created first if absent; rerunning overwrites existing figures in place.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := os.MkdirAll(p.project.FigsDir(), 0o755); err != nil {
		return errors.Wrapf(err, "unable to create figures directory %s", p.project.FigsDir())
	}

	pairs := Combinations(p.project.Images)
	if p.parallel {
		return p.concurrentRender(ctx, pairs)
	}

	return p.sequentialRender(ctx, pairs)
}

func (p *Pipeline) emit(event Event) {
	if p.progress != nil {
		p.progress(event)
	}
}

// renderPair performs the per pair contract shared by both paths: existence
// check of the match record, then one renderer call.
func (p *Pipeline) renderPair(ctx context.Context, pair Pair) error {
	p.emit(Event{Pair: pair, Status: StatusStarted})

	matchPath := p.project.MatchRecordPath(pair)
	if _, err := os.Stat(matchPath); err != nil {
		wrapped := errors.Wrapf(ErrMatchRecordNotFound, "matches file %s", matchPath)
		p.emit(Event{Pair: pair, Status: StatusFailed, Err: wrapped})

		return wrapped
	}

	start := time.Now()
	err := p.renderer.Render(ctx, RenderRequest{
		MatchPath:  matchPath,
		ProjectDir: p.project.Dir,
		I0Name:     pair.I0.Name,
		I1Name:     pair.I1.Name,
		OutPath:    p.project.ArtifactPath(pair),
	})
	elapsed := time.Since(start)
	if err != nil {
		p.emit(Event{Pair: pair, Status: StatusFailed, Elapsed: elapsed, Err: err})

		return err
	}

	if p.measure != nil {
		p.measure.AddMetric(pair.String(), p.workers).AddDuration(elapsed)
	}
	p.emit(Event{Pair: pair, Status: StatusDone, Elapsed: elapsed})

	return nil
}

func (p *Pipeline) sequentialRender(ctx context.Context, pairs []Pair) error {
	for _, pair := range pairs {
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "render interrupted")
		default:
		}

		if err := p.renderPair(ctx, pair); err != nil {
			return err
		}
	}

	return nil
}

func (p *Pipeline) concurrentRender(ctx context.Context, pairs []Pair) error {
	in := make(chan Pair)
	errGrp, dCtx := errgroup.WithContext(ctx)

	errGrp.Go(func() error {
		defer close(in)
		for _, pair := range pairs {
			select {
			case <-dCtx.Done():
				return errors.Wrap(dCtx.Err(), "pair dispatch interrupted")
			case in <- pair:
			}
		}

		return nil
	})

	// starts many consumers concurrently
	// each consumer stops as soon as an error happens
	for goIdx := 0; goIdx < p.workers; goIdx++ {
		localGoIdx := goIdx
		errGrp.Go(func() error {
		outer:
			for {
				select {
				case <-dCtx.Done():
					return errors.Wrapf(dCtx.Err(), "go routine %d:", localGoIdx)
				case pair, ok := <-in:
					if !ok {
						break outer
					}
					if err := p.renderPair(dCtx, pair); err != nil {
						return errors.Wrapf(err, "go routine %d:", localGoIdx)
					}
				}
			}

			return nil
		})
	}

	return errGrp.Wait()
}
