package pool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/paulsonkoly/onebrc/logging"
	"github.com/paulsonkoly/onebrc/stats"
	"github.com/paulsonkoly/onebrc/tokenizer"
)

const (
	// DefaultChunkSize is the approximate size of a chunk; it is cut back to
	// the last newline.
	DefaultChunkSize = 16 * 1024 * 1024
	// DefaultQueueDepth is how many chunks may wait for a worker.
	DefaultQueueDepth = 16
)

// QueueConfig configures RunQueue.
type QueueConfig struct {
	Config
	ChunkSize  int
	QueueDepth int
}

func (c QueueConfig) chunkSize() int {
	if c.ChunkSize < 1 {
		return DefaultChunkSize
	}
	return c.ChunkSize
}

func (c QueueConfig) queueDepth() int {
	if c.QueueDepth < 1 {
		return DefaultQueueDepth
	}
	return c.QueueDepth
}

// chunk is a run of whole rows read from the input at offset.
type chunk struct {
	buf    *[]byte
	data   []byte
	offset int64
}

// RunQueue reads r sequentially in a single goroutine, cuts it into row
// aligned chunks and hands them to the workers through a bounded queue. The
// reader blocks while the queue is full, which bounds memory to about
// (QueueDepth+Workers+1)*ChunkSize bytes. Each worker keeps one table across
// all the chunks it processes.
func RunQueue(ctx context.Context, r io.Reader, cfg QueueConfig) (*stats.Table, error) {
	log := logging.Component(cfg.Logger, "queue")

	size := cfg.chunkSize()
	bufs := sync.Pool{
		New: func() any {
			b := make([]byte, size)
			return &b
		},
	}

	workers := cfg.workers()
	chunks := make(chan chunk, cfg.queueDepth())
	results := make(chan *stats.Table, workers)
	done := reduce(results)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chunks)
		return produce(ctx, r, chunks, &bufs)
	})

	var opts []tokenizer.Option
	if cfg.Strict {
		opts = append(opts, tokenizer.WithStrictNewline())
	}

	for i := range workers {
		g.Go(func() error {
			tbl := stats.NewTable(tableCapacity)
			n := 0
			for c := range chunks {
				if err := ctx.Err(); err != nil {
					return err
				}
				err := aggregate(ctx, tokenizer.FromBytes(c.data, opts...), tbl)
				bufs.Put(c.buf)
				if err != nil {
					return fmt.Errorf("chunk at %d: %w", c.offset, err)
				}
				n++
			}
			log.Debug("worker done", "worker", i, "chunks", n, "keys", tbl.Len())

			results <- tbl
			return nil
		})
	}

	err := g.Wait()
	close(results)
	total := <-done
	if err != nil {
		return nil, err
	}
	return total, nil
}

// produce fills buffers from r, cuts each after its last newline and carries
// the rest over to the next buffer.
func produce(ctx context.Context, r io.Reader, chunks chan<- chunk, bufs *sync.Pool) error {
	var (
		leftover []byte
		offset   int64
	)

	for {
		bp := bufs.Get().(*[]byte)
		buf := *bp

		// leftover is always shorter than a buffer
		n := copy(buf, leftover)
		m, err := io.ReadFull(r, buf[n:])
		n += m

		eof := false
		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			eof = true
		default:
			return fmt.Errorf("queue: read at %d: %w", offset+int64(n), err)
		}

		data := buf[:n]
		leftover = leftover[:0]
		if !eof {
			i := bytes.LastIndexByte(data, '\n')
			if i < 0 {
				return fmt.Errorf("chunk at %d: %w", offset, tokenizer.ErrRowTooLarge)
			}
			leftover = append(leftover, data[i+1:]...)
			data = data[:i+1]
		}

		if len(data) == 0 {
			bufs.Put(bp)
		} else {
			select {
			case chunks <- chunk{buf: bp, data: data, offset: offset}:
			case <-ctx.Done():
				return ctx.Err()
			}
			offset += int64(len(data))
		}

		if eof {
			return nil
		}
	}
}
