package vizmatch_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stereosat/micmac-pipeline/pkg/vizmatch"
)

func TestDiscoverMissingProjectDir(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope")
	_, err := vizmatch.Discover(missing, "*.tif")
	require.ErrorIs(t, err, vizmatch.ErrProjectDirNotFound)
	assert.Contains(t, err.Error(), missing)
}

func TestDiscoverMissingHomolDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.tif"), []byte("img"), 0o644))

	_, err := vizmatch.Discover(dir, "*.tif")
	assert.ErrorIs(t, err, vizmatch.ErrHomolDirNotFound)
}

func TestDiscoverOrderAndFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Homol"), 0o755))
	for _, name := range []string{"c.tif", "a.tif", "b.tif", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	project, err := vizmatch.Discover(dir, "*.tif")
	require.NoError(t, err)

	names := make([]string, 0, len(project.Images))
	for _, img := range project.Images {
		names = append(names, img.Name)
	}
	assert.Equal(t, []string{"a.tif", "b.tif", "c.tif"}, names)
}

func TestDiscoverNoMatches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Homol"), 0o755))

	project, err := vizmatch.Discover(dir, "*.tif")
	require.NoError(t, err)
	assert.Empty(t, project.Images)
}

func TestProjectPaths(t *testing.T) {
	t.Parallel()

	project := &vizmatch.Project{Dir: "/data/forni"}
	pair := vizmatch.Pair{
		I0: vizmatch.Image{Name: "a.tif"},
		I1: vizmatch.Image{Name: "b.tif"},
	}

	assert.Equal(t, filepath.Join("/data/forni", "Homol", "Pastisa.tif", "b.tif.txt"), project.MatchRecordPath(pair))
	assert.Equal(t, filepath.Join("/data/forni", "match_figs", "matches_a.tif-b.tif.png"), project.ArtifactPath(pair))
	assert.Equal(t, filepath.Join("/data/forni", "match_figs"), project.FigsDir())
}
