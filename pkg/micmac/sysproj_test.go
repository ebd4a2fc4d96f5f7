package micmac_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stereosat/micmac-pipeline/pkg/micmac"
)

const testProj = "+proj=utm +zone=32 +datum=WGS84 +units=m +no_defs"

func TestWriteSysProj(t *testing.T) {
	t.Parallel()

	fname := filepath.Join(t.TempDir(), "SysPROJ.xml")
	require.NoError(t, micmac.WriteSysProj(testProj, fname))

	content, err := os.ReadFile(fname)
	require.NoError(t, err)

	got := string(content)
	assert.Contains(t, got, "<SystemeCoord>")
	assert.Contains(t, got, "<TypeCoord>eTC_Proj4</TypeCoord>")
	assert.Contains(t, got, "<AuxStr>"+testProj+"</AuxStr>")
}

func TestWriteSysProjReplacesExisting(t *testing.T) {
	t.Parallel()

	fname := filepath.Join(t.TempDir(), "SysPROJ.xml")
	require.NoError(t, os.WriteFile(fname, []byte("stale content"), 0o644))

	require.NoError(t, micmac.WriteSysProj(testProj, fname))

	content, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "stale content")
}

func TestWriteSysProjEmptyProj(t *testing.T) {
	t.Parallel()

	err := micmac.WriteSysProj("", filepath.Join(t.TempDir(), "SysPROJ.xml"))
	assert.ErrorIs(t, err, micmac.ErrProjMustBeSet)
}
