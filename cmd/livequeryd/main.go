package main

import (
	"context"
	"flag"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/statuscore/livequery/internal/core"
	"github.com/statuscore/livequery/internal/logging"
	"github.com/statuscore/livequery/internal/network"
	"github.com/statuscore/livequery/internal/query"
)

func main() {
	listen := flag.String("listen", ":6557", "address the query server listens on")
	seqURL := flag.String("seq", "", "Seq log server URL (default: LIVEQUERY_SEQ_URL)")
	simEvery := flag.Duration("sim-interval", 2*time.Second, "demo check simulator interval")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger, closeFn := logging.SetupLogger(*seqURL, level)
	defer closeFn()
	slog.SetDefault(logger)

	slog.Info("starting livequery...")

	// Build the monitoring core with the demo object configuration
	c := core.New()
	if err := seedDemoObjects(c); err != nil {
		slog.Error("loading object configuration failed", "error", err)
		closeFn()
		os.Exit(1)
	}
	hosts, services := c.Counts()
	slog.Info("object configuration loaded", "hosts", hosts, "services", services)

	// Register the queryable tables; a layout mismatch aborts here
	registry, err := core.Tables(c)
	if err != nil {
		slog.Error("table registration failed", "error", err)
		closeFn()
		os.Exit(1)
	}

	executor := query.NewExecutor(registry)
	executor.AddObserver(query.NewLoggingObserver())

	ln, err := net.Listen("tcp", *listen)
	if err != nil {
		slog.Error("failed to bind", "addr", *listen, "error", err)
		closeFn()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return network.NewServer(executor).Serve(ctx, ln)
	})
	g.Go(func() error {
		return core.NewSimulator(c, *simEvery).Run(ctx)
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		slog.Error("server failed", "error", err)
		closeFn()
		os.Exit(1)
	}
	slog.Info("shutting down")
}
