package assets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "pokedex/pkg/errors"
	"pokedex/pkg/models"
)

type fakeFetcher struct {
	fail     map[string]bool
	delay    time.Duration
	inflight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.fail[url] {
		return nil, errors.New("connection reset")
	}
	return []byte("png:" + url), nil
}

func assetsOf(urls map[models.AssetSlot]string) models.Assets {
	a := models.NewAssets()
	for slot, u := range urls {
		u := u
		a[slot] = &u
	}
	return a
}

func TestResolveStoresAndFallsBack(t *testing.T) {
	fs := afero.NewMemMapFs()
	fetcher := &fakeFetcher{fail: map[string]bool{"https://img.example/back/25.png": true}}
	r := NewResolver(fetcher, NewFSStore(fs, "uploads", "/images/"), time.Second)

	var (
		mu       sync.Mutex
		failures []*pkgerrors.AssetError
	)
	r.OnFailure = func(err *pkgerrors.AssetError) {
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, err)
	}

	out := r.Resolve(context.Background(), 25, assetsOf(map[models.AssetSlot]string{
		models.FrontDefault: "https://img.example/25.png",
		models.BackDefault:  "https://img.example/back/25.png",
	}))

	assert.Len(t, out, len(models.AssetSlots))
	assert.Equal(t, "/images/sprites/25-front_default.png", *out[models.FrontDefault])
	assert.Equal(t, "https://img.example/back/25.png", *out[models.BackDefault])
	assert.Nil(t, out[models.FrontShiny])

	data, err := afero.ReadFile(fs, "uploads/sprites/25-front_default.png")
	require.NoError(t, err)
	assert.Equal(t, "png:https://img.example/25.png", string(data))

	require.Len(t, failures, 1)
	assert.Equal(t, "back_default", failures[0].Slot)
	assert.ErrorIs(t, failures[0], pkgerrors.ErrAssetFetchFailed)
}

func TestResolveTimesOutPerSlot(t *testing.T) {
	fetcher := &fakeFetcher{delay: time.Second}
	r := NewResolver(fetcher, NewFSStore(afero.NewMemMapFs(), "uploads", "/images"), 20*time.Millisecond)

	start := time.Now()
	out := r.Resolve(context.Background(), 1, assetsOf(map[models.AssetSlot]string{
		models.FrontDefault: "https://img.example/1.png",
		models.FrontShiny:   "https://img.example/shiny/1.png",
	}))

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, "https://img.example/1.png", *out[models.FrontDefault])
	assert.Equal(t, "https://img.example/shiny/1.png", *out[models.FrontShiny])
}

func TestResolveFansOutAcrossSlots(t *testing.T) {
	fetcher := &fakeFetcher{delay: 30 * time.Millisecond}
	r := NewResolver(fetcher, NewFSStore(afero.NewMemMapFs(), "uploads", "/images"), time.Second)

	urls := make(map[models.AssetSlot]string, len(models.AssetSlots))
	for _, slot := range models.AssetSlots {
		urls[slot] = "https://img.example/" + string(slot) + ".png"
	}
	out := r.Resolve(context.Background(), 6, assetsOf(urls))

	for _, slot := range models.AssetSlots {
		require.NotNil(t, out[slot])
		assert.Equal(t, "/images/sprites/"+FileName(6, slot), *out[slot])
	}
	assert.Greater(t, fetcher.peak.Load(), int32(1))
	assert.LessOrEqual(t, fetcher.peak.Load(), int32(maxConcurrentFetches))
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher()
	data, err := f.Fetch(context.Background(), srv.URL+"/25.png")
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.png")
	assert.Error(t, err)
}

func TestFSStoreRejectsPathNames(t *testing.T) {
	s := NewFSStore(afero.NewMemMapFs(), "uploads", "/images")
	_, err := s.Put(context.Background(), "../escape.png", []byte("x"))
	assert.Error(t, err)
}
