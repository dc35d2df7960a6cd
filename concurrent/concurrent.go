package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"github.com/paulsonkoly/onebrc/input"
	"github.com/paulsonkoly/onebrc/logging"
	"github.com/paulsonkoly/onebrc/pool"
	"github.com/paulsonkoly/onebrc/report"
	"github.com/paulsonkoly/onebrc/stats"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process globals. It returns the exit code: 0 on
// success, 1 when the aggregation or the verification fails and 2 for bad
// arguments.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	cfg, err := LoadConfig(args, getenv, stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, ErrUsage):
		fmt.Fprintln(stderr, err)
		return 2
	case err != nil:
		fmt.Fprintln(stderr, "concurrent:", err)
		return 2
	}

	base := logging.New(stderr, cfg.LogLevel)
	log := logging.Component(base, "concurrent")

	if cfg.CPUProfile != "" {
		stopProfile, err := startProfile(cfg.CPUProfile)
		if err != nil {
			log.Error("cpu profile", "err", err)
			return 1
		}
		defer stopProfile()
	}

	start := time.Now()

	tbl, err := aggregate(ctx, cfg, base)
	if err != nil {
		log.Error("aggregation failed", "file", cfg.Path, "mode", cfg.Mode, "err", err)
		return 1
	}

	out := report.Format(tbl)
	if _, err := io.WriteString(stdout, out); err != nil {
		log.Error("writing report", "err", err)
		return 1
	}
	log.Info("done", "file", cfg.Path, "mode", cfg.Mode, "workers", cfg.Workers, "keys", tbl.Len(), "took", time.Since(start))

	if cfg.Expect != "" {
		if err := verify(cfg.Expect, out, stderr); err != nil {
			log.Error("verification failed", "expect", cfg.Expect, "err", err)
			return 1
		}
		log.Info("report matches", "expect", cfg.Expect)
	}
	return 0
}

func aggregate(ctx context.Context, cfg *Config, logger *slog.Logger) (*stats.Table, error) {
	f, err := input.Open(cfg.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	f.Advise()

	pcfg := pool.Config{
		Workers:  cfg.Workers,
		PageSize: cfg.PageSize,
		Strict:   cfg.Strict,
		Logger:   logger,
	}
	logging.Component(logger, "concurrent").Debug("aggregating", "file", cfg.Path, "size", f.Size(), "mode", cfg.Mode, "workers", cfg.Workers)

	if cfg.Mode == ModeQueue {
		return pool.RunQueue(ctx, f, pool.QueueConfig{
			Config:     pcfg,
			ChunkSize:  cfg.ChunkSize,
			QueueDepth: cfg.QueueDepth,
		})
	}
	return pool.Run(ctx, f, f.Size(), pcfg)
}

func startProfile(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}
