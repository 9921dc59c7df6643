package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tailored-agentic-units/reduks/config"
	"github.com/tailored-agentic-units/reduks/executor"
	"github.com/tailored-agentic-units/reduks/history"
	"github.com/tailored-agentic-units/reduks/middleware"
	"github.com/tailored-agentic-units/reduks/observability"
	"github.com/tailored-agentic-units/reduks/store"
)

// Counter is the demo state held inside an undo history.
type Counter struct {
	Value int
}

type Action string

const (
	Increment Action = "increment"
	Undo      Action = "undo"
	Redo      Action = "redo"
)

func reduce(state history.History[Counter], action Action) history.History[Counter] {
	switch action {
	case Increment:
		return state.NewValue(Counter{Value: state.Current().Value + 1})
	case Undo:
		return state.Undo()
	case Redo:
		return state.Redo()
	default:
		return state
	}
}

// printer needs no locking: the store waits for each delivery before the
// next unit runs.
type printer struct {
	count int
}

func (p *printer) OnNewState(state history.History[Counter]) {
	p.count++
	fmt.Printf("  [%d] value=%d undo=%d redo=%d\n",
		p.count, state.Current().Value, len(state.Past()), len(state.Future()))
}

func main() {
	var (
		configFile = flag.String("config", "", "Path to store config file (JSON or YAML)")
		actions    = flag.Int("actions", 5, "Number of increment actions to dispatch")
		undos      = flag.Int("undo", 2, "Number of undo actions to dispatch afterwards")
		workers    = flag.Int("workers", 0, "Subscriber pool workers (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	if *actions < 0 || *undos < 0 {
		fmt.Fprintln(os.Stderr, "Usage: reduks [-config <file>] [-actions N] [-undo N]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *workers > 0 {
		cfg.Executor.Workers = *workers
	}

	var logger *slog.Logger
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Tracing)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracing shutdown failed", slog.String("error", err.Error()))
		}
	}()

	pool := executor.NewPool(cfg.Executor, executor.WithLogger(logger))
	defer pool.Shutdown(0)

	var timingOpts []middleware.TimingOption
	timingOpts = append(timingOpts, middleware.WithLogger(logger))
	if *verbose {
		timingOpts = append(timingOpts, middleware.Verbose())
	}

	tracer := otel.Tracer("github.com/tailored-agentic-units/reduks")
	runCtx, span := tracer.Start(ctx, "reduks.run")
	defer span.End()

	s, err := store.New(
		history.New(Counter{}),
		reduce,
		[]store.Middleware[history.History[Counter], Action]{
			middleware.Logging[history.History[Counter], Action](logger),
			middleware.Timing[history.History[Counter], Action](cfg.SlowDispatchThreshold.Std(), timingOpts...),
			middleware.Tracing[history.History[Counter], Action](
				tracer,
				middleware.WithAttributes(attribute.String("store.name", cfg.Name)),
			),
		},
		store.WithConfig(*cfg),
		store.WithContext(ctx),
		store.WithLogger(logger),
		store.WithObserver(observability.NewMultiObserver(
			observability.NewSlogObserver(logger),
			observability.NewTraceObserver(),
		)),
		store.WithFaultHandler(func(f *store.Fault) {
			logger.Error("store fault", slog.String("error", f.Error()))
		}),
	)
	if err != nil {
		log.Fatalf("Failed to create store: %v", err)
	}

	p := &printer{}
	fmt.Println("Notifications:")
	if err := s.Subscribe(p, store.OnExecutor(pool)); err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	for range *actions {
		if err := s.DispatchContext(runCtx, Increment); err != nil {
			log.Fatalf("Dispatch failed: %v", err)
		}
	}
	for range *undos {
		if err := s.DispatchContext(runCtx, Undo); err != nil {
			log.Fatalf("Dispatch failed: %v", err)
		}
	}

	final, err := s.StateContext(ctx)
	if err != nil {
		log.Fatalf("Failed to read state: %v", err)
	}

	if err := s.Shutdown(0); err != nil {
		logger.Warn("store shutdown failed", slog.String("error", err.Error()))
	}

	fmt.Printf("\nFinal value: %d (undo=%d, redo=%d)\n",
		final.Current().Value, len(final.Past()), len(final.Future()))

	m := s.Metrics()
	fmt.Println("\nMetrics:")
	fmt.Printf("  dispatched:    %d\n", m.Dispatched)
	fmt.Printf("  committed:     %d\n", m.Committed)
	fmt.Printf("  skipped:       %d\n", m.Skipped)
	fmt.Printf("  notifications: %d\n", m.Notifications)
	fmt.Printf("  faults:        %d\n", m.Faults)

	stats := pool.Stats()
	fmt.Printf("  pool %s: workers=%d executed=%d\n", pool.Name(), stats.Workers, stats.Executed)
}
