package imgcache_test

import (
	"image"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stereosat/micmac-pipeline/internal/imgcache"
)

func TestGetOrLoadLoadsOnce(t *testing.T) {
	t.Parallel()

	cache := imgcache.New()

	var loads int32
	load := func(path string) (imgcache.Entry, error) {
		atomic.AddInt32(&loads, 1)

		return imgcache.Entry{Image: image.NewRGBA(image.Rect(0, 0, 2, 2)), Scale: 1}, nil
	}

	var wgrp sync.WaitGroup
	for i := 0; i < 8; i++ {
		wgrp.Add(1)
		go func() {
			defer wgrp.Done()
			entry, err := cache.GetOrLoad("a.tif", load)
			assert.NoError(t, err)
			assert.NotNil(t, entry.Image)
		}()
	}
	wgrp.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
	assert.Equal(t, 1, cache.Len())
}

func TestGetOrLoadDistinctPaths(t *testing.T) {
	t.Parallel()

	cache := imgcache.New()
	load := func(path string) (imgcache.Entry, error) {
		return imgcache.Entry{Scale: 1}, nil
	}

	_, err := cache.GetOrLoad("a.tif", load)
	require.NoError(t, err)
	_, err = cache.GetOrLoad("b.tif", load)
	require.NoError(t, err)

	assert.Equal(t, 2, cache.Len())
}

func TestGetOrLoadCachesError(t *testing.T) {
	t.Parallel()

	cache := imgcache.New()

	var loads int32
	load := func(path string) (imgcache.Entry, error) {
		atomic.AddInt32(&loads, 1)

		return imgcache.Entry{}, assert.AnError
	}

	_, err := cache.GetOrLoad("broken.tif", load)
	require.ErrorIs(t, err, assert.AnError)
	_, err = cache.GetOrLoad("broken.tif", load)
	require.ErrorIs(t, err, assert.AnError)

	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
}
