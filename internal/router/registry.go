package router

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seqnet/su/internal/fault"
	"github.com/seqnet/su/internal/record"
)

// Registry reconciles the configured pool membership into the store at
// startup.
type Registry struct {
	store Store
	log   *slog.Logger
}

// NewRegistry creates a Registry over store.
func NewRegistry(store Store, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{store: store, log: log}
}

// Reconcile registers every URL that is not already in the registry, with
// a process count of zero, and reports how many were new. Known URLs keep
// their counts; nothing is ever removed, so processes pinned to a unit
// that left the configuration stay resolvable. Safe to run on every
// startup.
func (g *Registry) Reconcile(ctx context.Context, urls []string) (int, error) {
	registered := 0
	for _, url := range urls {
		if url == "" {
			return registered, fault.New(fault.KindValidation, "scheduler list contains an empty url")
		}

		_, err := g.store.ReadSchedulerByURL(ctx, url)
		if err == nil {
			continue
		}
		if !fault.IsNotFound(err) {
			return registered, fmt.Errorf("reconcile scheduler %q: %w", url, err)
		}

		if _, err := g.store.WriteScheduler(ctx, record.Scheduler{URL: url}); err != nil {
			return registered, fmt.Errorf("register scheduler %q: %w", url, err)
		}
		g.log.Info("scheduler registered", "url", url)
		registered++
	}
	return registered, nil
}
