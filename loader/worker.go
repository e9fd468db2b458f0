// Package loader fetches newly discovered pools' on-chain state and wires
// them into the market graph under a bounded amount of concurrency.
package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/loomswap/arbcore/entities"
	"github.com/loomswap/arbcore/market"
	"github.com/prometheus/client_golang/prometheus"
)

// maxConcurrentTasks is the default bound on in-flight pool loads, matching
// the source's MAX_CONCURRENT_TASKS constant.
const maxConcurrentTasks = 20

// PoolRef identifies a pool to load: its id and the class the discoverer
// believes it to be (the pool itself reports its authoritative class once
// instantiated).
type PoolRef struct {
	ID    entities.PoolId
	Class entities.PoolClass
}

// FetchAndAddPoolsTask is one unit of work handed to the worker: a batch of
// pools discovered together (e.g. from one block's logs).
type FetchAndAddPoolsTask struct {
	Pools []PoolRef
}

// PoolInstantiator builds a concrete Pool for a discovered id/class pair.
type PoolInstantiator interface {
	InstantiatePool(ctx context.Context, id entities.PoolId, class entities.PoolClass) (entities.Pool, error)
}

// StateFetcher resolves a pool's RequiredState against the chain.
type StateFetcher interface {
	FetchCallsAndSlots(ctx context.Context, required entities.RequiredState) (FetchedState, error)
}

// Config configures a Worker.
type Config struct {
	Market       *market.Market
	MarketState  *MarketState
	Instantiator PoolInstantiator
	Fetcher      StateFetcher
	Logger       Logger
	Registry     prometheus.Registerer

	// MaxConcurrentTasks bounds in-flight pool loads. Zero uses the default.
	MaxConcurrentTasks int
	// DisablePoolRetry reproduces the source's behavior, where a pool is
	// marked processed before its load starts and stays marked even if the
	// load fails, so a failed pool is never retried within the worker's
	// lifetime. Left false (the default), a failed load un-marks the pool
	// so a later task for the same id retries it.
	DisablePoolRetry bool
}

func (c *Config) validate() error {
	if c.Market == nil {
		return errors.New("config: Market is required")
	}
	if c.MarketState == nil {
		return errors.New("config: MarketState is required")
	}
	if c.Instantiator == nil {
		return errors.New("config: Instantiator is required")
	}
	if c.Fetcher == nil {
		return errors.New("config: Fetcher is required")
	}
	if c.Logger == nil {
		return errors.New("config: Logger is required")
	}
	if c.Registry == nil {
		return errors.New("config: Registry is required")
	}
	return nil
}

// Worker consumes FetchAndAddPoolsTask values and loads each newly-seen
// pool at most once, bounded to MaxConcurrentTasks concurrent in-flight
// loads via a buffered-channel semaphore.
type Worker struct {
	cfg     Config
	metrics *Metrics
	sem     chan struct{}

	processedMu sync.Mutex
	processed   map[entities.PoolId]bool
}

// NewWorker builds a Worker from cfg, returning an error if cfg is invalid.
func NewWorker(cfg Config) (*Worker, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.MaxConcurrentTasks <= 0 {
		cfg.MaxConcurrentTasks = maxConcurrentTasks
	}
	return &Worker{
		cfg:       cfg,
		metrics:   NewMetrics(cfg.Registry),
		sem:       make(chan struct{}, cfg.MaxConcurrentTasks),
		processed: make(map[entities.PoolId]bool),
	}, nil
}

// Run drains tasks until ctx is cancelled or the channel closes, spawning a
// bounded-concurrency goroutine per newly-seen pool and waiting for every
// in-flight load to finish before returning.
func (w *Worker) Run(ctx context.Context, tasks <-chan FetchAndAddPoolsTask) {
	var wg sync.WaitGroup

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case task, ok := <-tasks:
			if !ok {
				wg.Wait()
				return
			}
			for _, ref := range task.Pools {
				if w.markProcessed(ref.ID) {
					w.metrics.tasksDuplicate.Inc()
					continue
				}
				w.metrics.tasksAccepted.Inc()

				wg.Add(1)
				go func(ref PoolRef) {
					defer wg.Done()
					select {
					case w.sem <- struct{}{}:
					case <-ctx.Done():
						return
					}
					defer func() { <-w.sem }()

					if err := w.loadPool(ctx, ref); err != nil {
						w.cfg.Logger.Error("failed to load pool", "pool", ref.ID.String(), "err", err)
						w.metrics.tasksFailed.Inc()
						if !w.cfg.DisablePoolRetry {
							w.unmarkProcessed(ref.ID)
						}
						return
					}
					w.metrics.tasksLoaded.Inc()
				}(ref)
			}
		}
	}
}

// markProcessed inserts id into the processed set, returning true if it
// was already present (mirrors the source's `processed_pools.insert(...)
// .is_some()` at-most-once check — insertion happens before the load
// starts, not after it succeeds, so a slow or stuck load never admits a
// second concurrent attempt at the same pool).
func (w *Worker) markProcessed(id entities.PoolId) bool {
	w.processedMu.Lock()
	defer w.processedMu.Unlock()
	if w.processed[id] {
		return true
	}
	w.processed[id] = true
	return false
}

func (w *Worker) unmarkProcessed(id entities.PoolId) {
	w.processedMu.Lock()
	defer w.processedMu.Unlock()
	delete(w.processed, id)
}

func (w *Worker) loadPool(ctx context.Context, ref PoolRef) error {
	start := time.Now()
	defer func() { w.metrics.fetchDuration.Observe(time.Since(start).Seconds()) }()

	pool, err := w.cfg.Instantiator.InstantiatePool(ctx, ref.ID, ref.Class)
	if err != nil {
		return fmt.Errorf("instantiate pool %s: %w", ref.ID, err)
	}

	required, err := pool.GetStateRequired()
	if err != nil {
		return fmt.Errorf("required state for pool %s: %w", ref.ID, err)
	}

	fetched, err := w.cfg.Fetcher.FetchCallsAndSlots(ctx, required)
	if err != nil {
		return fmt.Errorf("fetch state for pool %s: %w", ref.ID, err)
	}

	w.cfg.MarketState.ApplyState(ref.ID, fetched)
	w.cfg.MarketState.DisableCellVec(ref.ID, pool.GetReadOnlyCellVec())

	wrapper := entities.NewPoolWrapper(pool)
	if err := w.cfg.Market.AddPool(wrapper); err != nil && !errors.Is(err, entities.ErrDuplicatePool) {
		return fmt.Errorf("add pool %s: %w", ref.ID, err)
	}

	paths, err := w.cfg.Market.BuildSwapPathVec([]market.PoolDirections{
		{Pool: wrapper, Directions: wrapper.GetSwapDirections()},
	})
	if err != nil {
		return fmt.Errorf("build swap paths for pool %s: %w", ref.ID, err)
	}
	w.cfg.Market.AddPaths(paths)

	w.cfg.Logger.Debug("loaded pool", "pool", ref.ID.String(), "paths", len(paths))
	return nil
}
