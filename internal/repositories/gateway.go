package repositories

import (
	"context"
	"fmt"
	"time"

	"travelagency/internal/domain"
	"travelagency/internal/utils"
)

// GatewayConfig is injected once at construction instead of re-checking
// "is the remote store configured?" in every handler.
type GatewayConfig struct {
	PrimaryConfigured bool
	Resource          string
}

// Gateway unifies a primary and a fallback Store. Writes land in the first
// store that accepts them; afterwards every operation on that id goes to
// whichever store answers Get for it. The two stores are never
// synchronized.
type Gateway[T Record[T]] struct {
	cfg      GatewayConfig
	primary  Store[T]
	fallback Store[T]
	now      func() time.Time
}

func NewGateway[T Record[T]](cfg GatewayConfig, primary, fallback Store[T]) *Gateway[T] {
	return &Gateway[T]{
		cfg:      cfg,
		primary:  primary,
		fallback: fallback,
		now:      utils.NowUTC,
	}
}

// WithClock replaces the timestamp source (tests).
func (g *Gateway[T]) WithClock(now func() time.Time) *Gateway[T] {
	g.now = now
	return g
}

// chain lists the stores to try, primary first when configured.
func (g *Gateway[T]) chain() []Store[T] {
	out := make([]Store[T], 0, 2)
	if g.cfg.PrimaryConfigured && g.primary != nil {
		out = append(out, g.primary)
	}
	if g.fallback != nil {
		out = append(out, g.fallback)
	}
	return out
}

func (g *Gateway[T]) logFailure(action string, s Store[T], err error) {
	if domain.IsNotFound(err) || domain.IsNotConfigured(err) {
		return
	}
	utils.LogEvent("", "store", action, fmt.Sprintf("resource=%s backend=%s err=%v", g.cfg.Resource, s.Backend(), err))
}

// Create writes rec to the primary store, or the fallback on any error.
func (g *Gateway[T]) Create(ctx context.Context, rec T) (T, Backend, error) {
	rec = rec.Touched(g.now())

	var lastErr error = domain.NotConfiguredError{}
	for _, s := range g.chain() {
		if err := s.Insert(ctx, rec); err != nil {
			g.logFailure("create", s, err)
			lastErr = err
			continue
		}
		return rec, s.Backend(), nil
	}
	var zero T
	return zero, "", domain.UnavailableError{Op: "create " + g.cfg.Resource, Err: lastErr}
}

// locate finds the store holding id. A primary miss falls through to the
// fallback so records absorbed there during an outage stay reachable.
func (g *Gateway[T]) locate(ctx context.Context, id string) (T, Store[T], error) {
	var (
		zero     T
		lastErr  error = domain.NotConfiguredError{}
		notFound error
	)
	for _, s := range g.chain() {
		rec, err := s.Get(ctx, id)
		if err == nil {
			return rec, s, nil
		}
		g.logFailure("get", s, err)
		if domain.IsNotFound(err) {
			notFound = err
		}
		lastErr = err
	}
	if notFound != nil {
		return zero, nil, domain.NotFoundError{Resource: g.cfg.Resource, ID: id, Err: notFound}
	}
	return zero, nil, domain.UnavailableError{Op: "get " + g.cfg.Resource, Err: lastErr}
}

func (g *Gateway[T]) Get(ctx context.Context, id string) (T, Backend, error) {
	rec, s, err := g.locate(ctx, id)
	if err != nil {
		return rec, "", err
	}
	return rec, s.Backend(), nil
}

// List returns the full set from the first store that answers.
func (g *Gateway[T]) List(ctx context.Context) ([]T, Backend, error) {
	var lastErr error = domain.NotConfiguredError{}
	for _, s := range g.chain() {
		recs, err := s.List(ctx)
		if err != nil {
			g.logFailure("list", s, err)
			lastErr = err
			continue
		}
		return recs, s.Backend(), nil
	}
	return nil, "", domain.UnavailableError{Op: "list " + g.cfg.Resource, Err: lastErr}
}

// IDs scans stored ids with the same fallback discipline as List.
func (g *Gateway[T]) IDs(ctx context.Context) ([]string, Backend, error) {
	var lastErr error = domain.NotConfiguredError{}
	for _, s := range g.chain() {
		ids, err := s.IDs(ctx)
		if err != nil {
			g.logFailure("ids", s, err)
			lastErr = err
			continue
		}
		return ids, s.Backend(), nil
	}
	return nil, "", domain.UnavailableError{Op: "scan " + g.cfg.Resource, Err: lastErr}
}

// Update loads id from the store that holds it, applies mutate, stamps
// UpdatedAt and writes back to that same store. A mutate error aborts
// without writing.
func (g *Gateway[T]) Update(ctx context.Context, id string, mutate func(*T) error) (before, after T, backend Backend, err error) {
	current, s, err := g.locate(ctx, id)
	if err != nil {
		return before, after, "", err
	}
	before = current

	next := current
	if mutate != nil {
		if err := mutate(&next); err != nil {
			return before, after, s.Backend(), err
		}
	}
	next = next.Touched(g.now())

	if err := s.Replace(ctx, next); err != nil {
		g.logFailure("update", s, err)
		if domain.IsNotFound(err) {
			return before, after, s.Backend(), err
		}
		return before, after, s.Backend(), domain.UnavailableError{Op: "update " + g.cfg.Resource, Err: err}
	}
	return before, next, s.Backend(), nil
}

// Delete removes id from the store that holds it and returns the removed
// record.
func (g *Gateway[T]) Delete(ctx context.Context, id string) (T, Backend, error) {
	var zero T
	current, s, err := g.locate(ctx, id)
	if err != nil {
		return zero, "", err
	}
	if err := s.Delete(ctx, id); err != nil {
		g.logFailure("delete", s, err)
		if domain.IsNotFound(err) {
			return zero, s.Backend(), err
		}
		return zero, s.Backend(), domain.UnavailableError{Op: "delete " + g.cfg.Resource, Err: err}
	}
	return current, s.Backend(), nil
}
