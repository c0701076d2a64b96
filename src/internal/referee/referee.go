// Package referee finds candidate references for a knowledge-base
// entity's unreferenced statements: it pools documents the entity is
// plausibly described in, then searches them for the statements' values.
package referee

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"referee/src/internal/fetch"
	"referee/src/internal/patterns"
	"referee/src/internal/wikibase"
)

// DefaultFetchLimit bounds concurrent page fetches per request.
const DefaultFetchLimit = 16

// Engine wires the reference-discovery pipeline. It is stateless across
// requests; all per-request state lives in a fresh entity container.
type Engine struct {
	loader     wikibase.Loader
	fetcher    *fetch.Fetcher
	fetchLimit int
	log        *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithFetchLimit bounds concurrent page fetches (default DefaultFetchLimit).
func WithFetchLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.fetchLimit = n
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New returns an Engine reading entities through loader and documents
// through fetcher.
func New(loader wikibase.Loader, fetcher *fetch.Fetcher, opts ...Option) *Engine {
	e := &Engine{
		loader:     loader,
		fetcher:    fetcher,
		fetchLimit: DefaultFetchLimit,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FindReferences runs the full pipeline for one entity and returns merged,
// deterministically ordered candidate references. Unsupported entities and
// entities with nothing to reference return an empty list, not an error;
// only a failed load of the target entity itself is fatal.
func (e *Engine) FindReferences(ctx context.Context, entityID string) ([]Candidate, error) {
	id := strings.ToUpper(strings.TrimSpace(entityID))
	entities := wikibase.NewContainer(e.loader)
	log := e.log.With(zap.String("entity", id))

	supported, err := e.isSupportedEntity(ctx, entities, id)
	if err != nil {
		return nil, err
	}
	if !supported {
		log.Debug("entity class unsupported")
		return []Candidate{}, nil
	}

	statements, err := e.statementsNeedingReferences(ctx, entities, id)
	if err != nil {
		return nil, err
	}
	if len(statements) == 0 {
		log.Debug("no eligible statements")
		return []Candidate{}, nil
	}

	pool, err := e.collectCandidates(ctx, entities, id)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		log.Debug("no candidate urls")
		return []Candidate{}, nil
	}
	log.Debug("matching", zap.Int("statements", len(statements)), zap.Int("urls", len(pool)))

	gen := patterns.NewGenerator(entities)
	var mu sync.Mutex
	var raw []Candidate
	g, gctx := errgroup.WithContext(ctx)
	for _, st := range statements {
		g.Go(func() error {
			recs, err := e.processStatement(gctx, gen, st, pool)
			if err != nil {
				// A failed subordinate load degrades to no matches for
				// this statement, same as a failed fetch.
				log.Warn("statement matching failed",
					zap.String("statement", st.id), zap.Error(err))
				return nil
			}
			if st.property == propDescribedAtURL {
				// Described-at-URL statements are satisfied by their own
				// existence; matched for completeness, never emitted.
				return nil
			}
			mu.Lock()
			raw = append(raw, recs...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	kept := raw[:0]
	for _, c := range raw {
		if c.Property == propDescribedAtURL {
			continue
		}
		kept = append(kept, c)
	}

	sortCandidates(kept)
	return mergeCandidates(kept), nil
}
