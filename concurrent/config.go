package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/paulsonkoly/onebrc/logging"
	"github.com/paulsonkoly/onebrc/pool"
	"github.com/paulsonkoly/onebrc/tokenizer"
)

const (
	ModePartition = "partition"
	ModeQueue     = "queue"
)

// ErrUsage is returned when the measurements file argument is missing.
var ErrUsage = errors.New("usage: concurrent [flags] <measurements-file>")

// Config holds the aggregator settings. Environment variables give the
// defaults, flags override them.
type Config struct {
	Path       string
	Workers    int
	PageSize   int
	Mode       string
	ChunkSize  int
	QueueDepth int
	Strict     bool
	Expect     string
	LogLevel   string
	CPUProfile string
}

// LoadConfig parses args (without the program name). Flag errors and usage
// go to output.
func LoadConfig(args []string, getenv func(string) string, output io.Writer) (*Config, error) {
	cfg := &Config{
		Workers:    runtime.NumCPU(),
		PageSize:   tokenizer.DefaultPageSize,
		Mode:       ModePartition,
		ChunkSize:  pool.DefaultChunkSize,
		QueueDepth: pool.DefaultQueueDepth,
		LogLevel:   "info",
	}

	var err error
	if cfg.Workers, err = envInt(getenv, "BRC_WORKERS", cfg.Workers); err != nil {
		return nil, err
	}
	if cfg.PageSize, err = envInt(getenv, "BRC_PAGE_SIZE", cfg.PageSize); err != nil {
		return nil, err
	}
	if cfg.ChunkSize, err = envInt(getenv, "BRC_CHUNK_SIZE", cfg.ChunkSize); err != nil {
		return nil, err
	}
	if cfg.QueueDepth, err = envInt(getenv, "BRC_QUEUE_DEPTH", cfg.QueueDepth); err != nil {
		return nil, err
	}
	if mode := getenv("BRC_MODE"); mode != "" {
		cfg.Mode = mode
	}
	if level := getenv(logging.EnvLevel); level != "" {
		cfg.LogLevel = level
	}

	fs := flag.NewFlagSet("concurrent", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, ErrUsage)
		fs.PrintDefaults()
	}
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel workers")
	fs.IntVar(&cfg.PageSize, "page", cfg.PageSize, "tokenizer read buffer size in bytes")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "partition or queue")
	fs.IntVar(&cfg.ChunkSize, "chunk", cfg.ChunkSize, "chunk size in bytes (queue mode)")
	fs.IntVar(&cfg.QueueDepth, "queue", cfg.QueueDepth, "chunks waiting for a worker (queue mode)")
	fs.BoolVar(&cfg.Strict, "strict", false, "require the last row to end with a newline")
	fs.StringVar(&cfg.Expect, "expect", "", "compare the report with this file")
	fs.StringVar(&cfg.CPUProfile, "cpuprofile", "", "write a CPU profile to this file")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level: debug, info, warn, error or quiet")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, ErrUsage
	}
	cfg.Path = fs.Arg(0)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	switch c.Mode {
	case ModePartition:
	case ModeQueue:
		if c.ChunkSize < 1 {
			return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize)
		}
		if c.QueueDepth < 1 {
			return fmt.Errorf("queue depth must be positive, got %d", c.QueueDepth)
		}
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	return nil
}

func envInt(getenv func(string) string, name string, def int) (int, error) {
	s := getenv(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}
