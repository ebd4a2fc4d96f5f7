package vizmatch

import "context"

// RenderRequest carries everything a renderer needs to produce one figure.
type RenderRequest struct {
	// MatchPath is the match record of the pair. It exists when the request
	// is issued.
	MatchPath string
	// ProjectDir is the root of the project; both source images live there.
	ProjectDir string
	I0Name     string
	I1Name     string
	// OutPath is where the figure must be written. Unique per pair.
	OutPath string
}

// Renderer produces one visualization artifact per request. Implementations
// are opaque to the pipeline: whatever error they return is propagated to the
// caller as is.
type Renderer interface {
	Render(ctx context.Context, req RenderRequest) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, req RenderRequest) error

func (f RendererFunc) Render(ctx context.Context, req RenderRequest) error {
	return f(ctx, req)
}
