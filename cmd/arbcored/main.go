// Command arbcored wires the pool loader into a minimal runnable process:
// load config, build a market seeded with the chain's default tokens, and
// run the loader worker until interrupted. No swap-line encoder is built.
//
// The chain RPC client and per-protocol pool constructors are out of this
// module's scope (see entities.Pool, which specifies only their interface),
// so the PoolInstantiator and StateFetcher below are stand-ins that make
// the wiring compile and run end to end without a live chain connection.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/loomswap/arbcore/chains"
	"github.com/loomswap/arbcore/cmd/arbcored/config"
	"github.com/loomswap/arbcore/entities"
	"github.com/loomswap/arbcore/loader"
	"github.com/loomswap/arbcore/market"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	rootLogHandler := slog.NewJSONHandler(os.Stdout, nil)
	rootLogger := slog.New(rootLogHandler)

	cfg, err := loadConfig()
	if err != nil {
		rootLogger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	m := market.NewMarket()
	if err := chains.AddDefaultTokensToMarket(m, chains.ChainID(cfg.ChainID)); err != nil {
		rootLogger.Error("failed to seed default tokens", "chain_id", cfg.ChainID, "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	go serveMetrics(rootLogger.With("component", "metrics"), cfg.MetricsAddr, registry)

	worker, err := loader.NewWorker(loader.Config{
		Market:             m,
		MarketState:        loader.NewMarketState(),
		Instantiator:       stubInstantiator{},
		Fetcher:            stubFetcher{},
		Logger:             rootLogger.With("component", "loader"),
		Registry:           registry,
		MaxConcurrentTasks: cfg.MaxConcurrentTasks,
		DisablePoolRetry:   cfg.DisablePoolRetry,
	})
	if err != nil {
		rootLogger.Error("failed to build loader worker", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tasks := make(chan loader.FetchAndAddPoolsTask)
	close(tasks) // no live discovery feed is wired; Run drains and returns.

	rootLogger.Info("arbcore worker starting", "chain_id", cfg.ChainID, "tokens", m.String())
	worker.Run(ctx, tasks)
	rootLogger.Info("arbcore worker stopped")
}

func loadConfig() (*config.Config, error) {
	configPath := flag.String("config", "config.yaml", "Path to the configuration file.")
	flag.Parse()
	log.Printf("loading configuration from: %s", *configPath)
	return config.LoadConfig(*configPath)
}

func serveMetrics(logger loader.Logger, addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", "error", err)
	}
}

// stubInstantiator stands in for the per-protocol pool constructors the
// blockchain integration layer would provide; it always fails, since no
// concrete pool construction is in scope.
type stubInstantiator struct{}

func (stubInstantiator) InstantiatePool(ctx context.Context, id entities.PoolId, class entities.PoolClass) (entities.Pool, error) {
	return nil, entities.ErrNotImplemented
}

// stubFetcher stands in for a live chain RPC client; it always fails, since
// no concrete dialer is in scope.
type stubFetcher struct{}

func (stubFetcher) FetchCallsAndSlots(ctx context.Context, required entities.RequiredState) (loader.FetchedState, error) {
	return loader.FetchedState{}, entities.ErrNotImplemented
}
