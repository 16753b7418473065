// Package layer connects bundles, timelines and frame selection for the
// renderer.
package layer

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/provide-io/ffab/go/ffab/pkg/ffab/cache"
	ffaberrors "github.com/provide-io/ffab/go/ffab/pkg/ffab/errors"
	"github.com/provide-io/ffab/go/ffab/pkg/ffab/format_v1"
	"github.com/provide-io/ffab/go/ffab/pkg/ffab/source"
)

// Library resolves sources to decoded bundles through a shared cache.
type Library struct {
	cache  *cache.Cache[format_v1.Bundle]
	logger hclog.Logger
}

// NewLibrary creates a library over c. A nil cache gets a default one.
func NewLibrary(c *cache.Cache[format_v1.Bundle], logger hclog.Logger) *Library {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if c == nil {
		c = cache.New[format_v1.Bundle](cache.WithLogger(logger.Named("cache")))
	}
	return &Library{cache: c, logger: logger}
}

// Bundle returns the decoded bundle for src, or nil if it does not decode.
// A bundle decoded from a mapped source retains the mapping, so it stays
// readable after the source is closed.
func (l *Library) Bundle(src source.Source) *format_v1.Bundle {
	id := src.Identity()
	return l.cache.GetOrCreate(id, func() (*format_v1.Bundle, error) {
		var keep any
		if r, ok := src.(source.Retainer); ok {
			keep = r.Retain()
		}
		b, err := format_v1.DecodeRetained(src.Bytes(), keep, l.logger.Named("decode"))
		if err != nil {
			l.logger.Warn("⚠️ Bundle failed to decode", "identity", fmt.Sprintf("%016x", id), "error", err)
			return nil, err
		}
		return b, nil
	})
}

// Preload decodes sources in parallel so first use does not stall. It stops
// scheduling work after the first failure and returns it.
func (l *Library) Preload(ctx context.Context, srcs ...source.Source) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, src := range srcs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if l.Bundle(src) == nil {
				return fmt.Errorf("%w: %016x", ffaberrors.ErrDecodeFailed, src.Identity())
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	l.logger.Debug("✅ Preloaded bundles", "count", len(srcs))
	return nil
}

// Cache exposes the underlying cache.
func (l *Library) Cache() *cache.Cache[format_v1.Bundle] {
	return l.cache
}
