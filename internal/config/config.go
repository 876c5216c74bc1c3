// Package config loads the indexer's runtime configuration from flags
// and environment variables. Flags carry operator-facing toggles;
// environment variables carry deployment wiring (endpoints, DSNs) so
// secrets never show up in process listings.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// Source types selectable via SOURCE_TYPE.
const (
	SourceFile = "file"
	SourceGRPC = "grpc"
	SourceRPC  = "rpc"
)

// Config is everything cmd/indexer needs to wire a source, a store,
// and an engine together.
type Config struct {
	// SourceType is one of SourceFile, SourceGRPC, SourceRPC.
	SourceType string

	// DatabaseURL enables the postgres store when non-empty. Empty
	// falls back to the in-memory store.
	DatabaseURL string

	// ReplayFile is the newline-delimited JSON file for SOURCE_TYPE=file.
	ReplayFile string
	// GRPCEndpoint is the geyser-style feed target for SOURCE_TYPE=grpc.
	GRPCEndpoint string
	// RPCEndpoint and RPCAddress drive the polling backfill source.
	RPCEndpoint string
	RPCAddress  string

	// MetricsAddr serves /metrics and /health when non-empty.
	MetricsAddr string

	// Migrate applies embedded schema migrations at startup.
	Migrate bool

	// Engine tuning. Zero values defer to the engine's defaults.
	QueueCapacity int
	BatchSize     int
	FlushInterval time.Duration

	// RetryBatches opts the persister into retrying failed batches
	// with backoff instead of dropping them immediately.
	RetryBatches bool
}

// Load parses args (usually os.Args[1:]) and reads the environment.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("indexer", flag.ContinueOnError)

	cfg := &Config{}
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", envOr("METRICS_ADDR", ":9090"), "Prometheus metrics HTTP address (empty to disable)")
	fs.BoolVar(&cfg.Migrate, "migrate", false, "Apply schema migrations before starting")
	fs.IntVar(&cfg.QueueCapacity, "queue-capacity", 0, "Persistence queue capacity (0 = default)")
	fs.IntVar(&cfg.BatchSize, "batch-size", 0, "Events per store batch (0 = default)")
	fs.DurationVar(&cfg.FlushInterval, "flush-interval", 0, "Max time between flushes (0 = default)")
	fs.BoolVar(&cfg.RetryBatches, "retry-batches", false, "Retry failed store batches with backoff before dropping")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.SourceType = envOr("SOURCE_TYPE", SourceFile)
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.ReplayFile = os.Getenv("REPLAY_FILE")
	cfg.GRPCEndpoint = os.Getenv("GRPC_ENDPOINT")
	cfg.RPCEndpoint = os.Getenv("RPC_ENDPOINT")
	cfg.RPCAddress = os.Getenv("RPC_ADDRESS")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.SourceType {
	case SourceFile:
		if c.ReplayFile == "" {
			return fmt.Errorf("SOURCE_TYPE=file requires REPLAY_FILE")
		}
	case SourceGRPC:
		if c.GRPCEndpoint == "" {
			return fmt.Errorf("SOURCE_TYPE=grpc requires GRPC_ENDPOINT")
		}
	case SourceRPC:
		if c.RPCEndpoint == "" {
			return fmt.Errorf("SOURCE_TYPE=rpc requires RPC_ENDPOINT")
		}
		if c.RPCAddress == "" {
			return fmt.Errorf("SOURCE_TYPE=rpc requires RPC_ADDRESS (program address to poll)")
		}
	default:
		return fmt.Errorf("unknown SOURCE_TYPE %q (want file, grpc, or rpc)", c.SourceType)
	}

	if c.Migrate && c.DatabaseURL == "" {
		return fmt.Errorf("-migrate requires DATABASE_URL")
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
