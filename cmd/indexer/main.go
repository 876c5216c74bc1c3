package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/subhdotsol/Indexer-with-benifit/internal/config"
	"github.com/subhdotsol/Indexer-with-benifit/internal/engine"
	"github.com/subhdotsol/Indexer-with-benifit/internal/ingestsource"
	"github.com/subhdotsol/Indexer-with-benifit/internal/ingestsource/filesource"
	"github.com/subhdotsol/Indexer-with-benifit/internal/ingestsource/grpcsource"
	"github.com/subhdotsol/Indexer-with-benifit/internal/ingestsource/rpcsource"
	"github.com/subhdotsol/Indexer-with-benifit/internal/observability"
	"github.com/subhdotsol/Indexer-with-benifit/internal/parser"
	"github.com/subhdotsol/Indexer-with-benifit/internal/parser/jupiterparser"
	"github.com/subhdotsol/Indexer-with-benifit/internal/parser/pumpfunparser"
	"github.com/subhdotsol/Indexer-with-benifit/internal/parser/raydiumparser"
	"github.com/subhdotsol/Indexer-with-benifit/internal/parser/splparser"
	"github.com/subhdotsol/Indexer-with-benifit/internal/store"
	"github.com/subhdotsol/Indexer-with-benifit/internal/store/memory"
	pgstore "github.com/subhdotsol/Indexer-with-benifit/internal/store/postgres"
	"github.com/subhdotsol/Indexer-with-benifit/internal/store/postgres/migrations"
)

func main() {
	logger := log.New(os.Stdout, "[indexer] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	// Start metrics server if enabled
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("Starting metrics server on %s", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Handle shutdown signals with graceful timeout
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
			// Normal shutdown completed
		}
	}()

	err = run(ctx, logger, cfg)

	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Fatalf("Error: %v", err)
	}

	logger.Println("Shutdown complete")
}

func run(ctx context.Context, logger *log.Logger, cfg *config.Config) error {
	src, closeSrc, err := newSource(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}
	defer closeSrc()

	var eventStore store.EventStore = memory.New()
	if cfg.DatabaseURL != "" {
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer pool.Close()

		if cfg.Migrate {
			if err := migrations.Run(ctx, pool); err != nil {
				return fmt.Errorf("apply migrations: %w", err)
			}
			logger.Println("Migrations applied")
		}

		eventStore = pgstore.New(pool)
	}

	registry := parser.NewRegistry(
		splparser.New(),
		raydiumparser.New(),
		jupiterparser.New(),
		pumpfunparser.New(),
	)

	opts := engine.Options{
		Source:        src,
		Parsers:       registry,
		Store:         eventStore,
		QueueCapacity: cfg.QueueCapacity,
		BatchSize:     cfg.BatchSize,
		FlushInterval: cfg.FlushInterval,
		Logger:        logger,
	}
	if cfg.RetryBatches {
		opts.RetryPolicy = engine.DefaultRetryPolicy()
	}

	eng := engine.New(opts)

	// Mirror engine counters onto Prometheus while it runs.
	observerCtx, stopObserver := context.WithCancel(ctx)
	observerDone := make(chan struct{})
	go func() {
		defer close(observerDone)
		observer := observability.NewSnapshotObserver(observability.DefaultMetrics)
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-observerCtx.Done():
				observer.Observe(eng.Stats())
				return
			case <-ticker.C:
				observer.Observe(eng.Stats())
			}
		}
	}()

	logger.Printf("Starting ingestion (source=%s)...", cfg.SourceType)
	err = eng.Run(ctx)
	stopObserver()

	snap := eng.Stats()
	logger.Printf("Ingestion finished: pulled=%d dispatched=%d committed=%d dropped=%d batch_failures=%d",
		snap.Pulled, snap.Dispatched, snap.Committed, snap.Dropped, snap.BatchFailures)

	<-observerDone
	return err
}

// newSource builds the driver selected by SOURCE_TYPE. The returned
// cleanup func is always safe to call.
func newSource(ctx context.Context, cfg *config.Config) (ingestsource.Source, func(), error) {
	switch cfg.SourceType {
	case config.SourceFile:
		src, err := filesource.Open(cfg.ReplayFile)
		if err != nil {
			return nil, func() {}, err
		}
		return src, func() { _ = src.Close() }, nil

	case config.SourceGRPC:
		src, err := grpcsource.Dial(ctx, cfg.GRPCEndpoint,
			grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, func() {}, err
		}
		return src, func() { _ = src.Close() }, nil

	case config.SourceRPC:
		src := rpcsource.New(cfg.RPCEndpoint, cfg.RPCAddress)
		return src, func() {}, nil

	default:
		return nil, func() {}, fmt.Errorf("unknown source type %q", cfg.SourceType)
	}
}
