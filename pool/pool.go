// Package pool runs the tokenizers in parallel and reduces their tables into
// one.
package pool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/paulsonkoly/onebrc/logging"
	"github.com/paulsonkoly/onebrc/partition"
	"github.com/paulsonkoly/onebrc/stats"
	"github.com/paulsonkoly/onebrc/tokenizer"
)

const (
	// tableCapacity is the expected number of distinct keys.
	tableCapacity = 10_000

	// checkEvery is how many rows a worker parses between cancellation checks.
	checkEvery = 1 << 16
)

// Config is shared by both modes.
type Config struct {
	// Workers defaults to runtime.NumCPU().
	Workers int
	// PageSize is the tokenizer read buffer, tokenizer.DefaultPageSize if 0.
	PageSize int
	// Strict rejects a last row with no trailing newline.
	Strict bool
	Logger *slog.Logger
}

func (c Config) workers() int {
	if c.Workers < 1 {
		return runtime.NumCPU()
	}
	return c.Workers
}

func (c Config) options() []tokenizer.Option {
	var opts []tokenizer.Option
	if c.PageSize > 0 {
		opts = append(opts, tokenizer.WithPageSize(c.PageSize))
	}
	if c.Strict {
		opts = append(opts, tokenizer.WithStrictNewline())
	}
	return opts
}

// Run splits the size bytes of r into one newline aligned partition per worker
// and aggregates each partition in its own goroutine. Partial tables are merged
// as they complete. The first failure cancels the remaining workers and no
// table is returned.
func Run(ctx context.Context, r io.ReaderAt, size int64, cfg Config) (*stats.Table, error) {
	log := logging.Component(cfg.Logger, "pool")

	parts, err := partition.Split(r, size, cfg.workers())
	if err != nil {
		return nil, err
	}
	log.Debug("partitioned", "size", size, "partitions", len(parts))

	// buffered for every partition so a finished worker never waits on the
	// reducer
	results := make(chan *stats.Table, len(parts))
	done := reduce(results)

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range parts {
		g.Go(func() error {
			tok := tokenizer.New(p.Section(r), cfg.options()...)
			tbl := stats.NewTable(tableCapacity)

			if err := aggregate(ctx, tok, tbl); err != nil {
				return fmt.Errorf("partition %d [%d, %d): %w", i, p.Start, p.End, err)
			}
			log.Debug("partition done", "partition", i, "bytes", p.Len(), "rows", tok.Rows(), "keys", tbl.Len())

			results <- tbl
			return nil
		})
	}

	err = g.Wait()
	close(results)
	total := <-done
	if err != nil {
		return nil, err
	}
	return total, nil
}

// reduce folds every table received on results into one, in arrival order.
// The merged table is delivered once results is closed.
func reduce(results <-chan *stats.Table) <-chan *stats.Table {
	done := make(chan *stats.Table, 1)
	go func() {
		total := stats.NewTable(tableCapacity)
		for tbl := range results {
			total.Merge(tbl)
		}
		done <- total
	}()
	return done
}

// aggregate feeds every row of tok into tbl.
func aggregate(ctx context.Context, tok *tokenizer.Tokenizer, tbl *stats.Table) error {
	for {
		key, v, err := tok.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		tbl.InsertOrUpdate(key, v)

		if tok.Rows()%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
}
