package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stereosat/micmac-pipeline/pkg/vizmatch/render"
)

func writeRecord(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "b.tif.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestParseHomol(t *testing.T) {
	t.Parallel()

	path := writeRecord(t, "10 20 30 40\n1.5 2.5 3.5 4.5\n")

	matches, err := render.ParseHomol(path)
	require.NoError(t, err)
	assert.Equal(t, []render.Match{
		{X0: 10, Y0: 20, X1: 30, Y1: 40},
		{X0: 1.5, Y0: 2.5, X1: 3.5, Y1: 4.5},
	}, matches)
}

func TestParseHomolSkipsBlankLinesAndExtraColumns(t *testing.T) {
	t.Parallel()

	path := writeRecord(t, "\n10 20 30 40 0.95\n\n  \n1 2 3 4\n")

	matches, err := render.ParseHomol(path)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
	assert.Equal(t, render.Match{X0: 10, Y0: 20, X1: 30, Y1: 40}, matches[0])
}

func TestParseHomolShortLine(t *testing.T) {
	t.Parallel()

	path := writeRecord(t, "10 20 30\n")

	_, err := render.ParseHomol(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestParseHomolBadFloat(t *testing.T) {
	t.Parallel()

	path := writeRecord(t, "1 2 3 4\n1 x 3 4\n")

	_, err := render.ParseHomol(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseHomolMissingFile(t *testing.T) {
	t.Parallel()

	_, err := render.ParseHomol(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
