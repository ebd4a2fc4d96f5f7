package vizmatch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stereosat/micmac-pipeline/pkg/vizmatch"
)

// fakeRenderer records every request and writes a small artifact, so tests
// can observe both the call sequence and the on-disk effects.
type fakeRenderer struct {
	mu       sync.Mutex
	requests []vizmatch.RenderRequest
	failOn   string // "i0-i1" pair name to fail on, empty for none
}

func (r *fakeRenderer) Render(_ context.Context, req vizmatch.RenderRequest) error {
	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.mu.Unlock()

	if r.failOn != "" && r.failOn == req.I0Name+"-"+req.I1Name {
		return assert.AnError
	}

	return os.WriteFile(req.OutPath, []byte("png"), 0o644)
}

func (r *fakeRenderer) calls() []vizmatch.RenderRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]vizmatch.RenderRequest(nil), r.requests...)
}

// newProjectDir creates a project tree with the given images and one match
// record per listed pair.
func newProjectDir(t *testing.T, images []string, pairs [][2]string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range images {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("img"), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Homol"), 0o755))
	for _, pair := range pairs {
		pastisDir := filepath.Join(dir, "Homol", "Pastis"+pair[0])
		require.NoError(t, os.MkdirAll(pastisDir, 0o755))
		record := filepath.Join(pastisDir, pair[1]+".txt")
		require.NoError(t, os.WriteFile(record, []byte("1 2 3 4\n5 6 7 8\n"), 0o644))
	}

	return dir
}

func discoverProject(t *testing.T, dir string) *vizmatch.Project {
	t.Helper()

	project, err := vizmatch.Discover(dir, "*.tif")
	require.NoError(t, err)

	return project
}
