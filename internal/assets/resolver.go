// Package assets copies remote record images to local storage and
// rewrites the asset map to point at the copies, falling back to the
// remote URL whenever a copy cannot be made.
package assets

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	pkgerrors "pokedex/pkg/errors"
	"pokedex/pkg/models"
)

const maxConcurrentFetches = 8

// BlobFetcher downloads the bytes behind a URL.
type BlobFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// BlobStore persists one asset and returns its public reference.
type BlobStore interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// Resolver maps each slot to a stored copy. Failures never propagate: the
// slot keeps its source URL and OnFailure, when set, is told why.
type Resolver struct {
	Fetcher   BlobFetcher
	Store     BlobStore
	Timeout   time.Duration // per slot; zero means no bound beyond ctx
	OnFailure func(err *pkgerrors.AssetError)
}

func NewResolver(fetcher BlobFetcher, store BlobStore, timeout time.Duration) *Resolver {
	return &Resolver{Fetcher: fetcher, Store: store, Timeout: timeout}
}

// Resolve returns a new asset map with every slot present. Slots are
// fetched concurrently and joined before returning.
func (r *Resolver) Resolve(ctx context.Context, id int, assets models.Assets) models.Assets {
	resolved := make([]*string, len(models.AssetSlots))
	failures := make([]*pkgerrors.AssetError, len(models.AssetSlots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for i, slot := range models.AssetSlots {
		src := assets.Get(slot)
		if src == nil || *src == "" {
			continue
		}
		g.Go(func() error {
			ref, err := r.resolveSlot(gctx, id, slot, *src)
			if err != nil {
				failures[i] = &pkgerrors.AssetError{RecordID: id, Slot: string(slot), URL: *src, Err: err}
				fallback := *src
				resolved[i] = &fallback
				return nil
			}
			resolved[i] = &ref
			return nil
		})
	}
	_ = g.Wait()

	out := models.NewAssets()
	for i, slot := range models.AssetSlots {
		out[slot] = resolved[i]
		if failures[i] != nil && r.OnFailure != nil {
			r.OnFailure(failures[i])
		}
	}
	return out
}

func (r *Resolver) resolveSlot(ctx context.Context, id int, slot models.AssetSlot, src string) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	data, err := r.Fetcher.Fetch(ctx, src)
	if err != nil {
		return "", err
	}
	return r.Store.Put(ctx, FileName(id, slot), data)
}

// FileName is the deterministic blob name for one record slot.
func FileName(id int, slot models.AssetSlot) string {
	return fmt.Sprintf("%d-%s.png", id, slot)
}
