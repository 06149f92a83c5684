package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
)

// Block is a chunk of decoded mono PCM samples.
type Block []int

// BlockReader pulls decoded source samples one block at a time. Next
// returns io.EOF when the source is exhausted.
type BlockReader interface {
	Next(ctx context.Context) (Block, error)
	Close() error
}

// BlockWriter accepts re-encoded PCM blocks. Ready yields once per block
// the writer is prepared to accept; the conversion loop never calls Write
// without first receiving from Ready, which is what bounds memory use.
// Finalize flushes buffered output and must succeed before the converted
// file may be used. Abort discards the partial output.
type BlockWriter interface {
	Ready() <-chan struct{}
	Write(Block) error
	Finalize(ctx context.Context) error
	Abort()
}

// ErrConversionReused reports a second Run on an already-consumed conversion.
var ErrConversionReused = errors.New("conversion already consumed")

// Conversion drives one streaming decode/encode pass over a reader/writer
// pair. The pair is owned exclusively by the conversion: Run tears both
// down on every exit path and can only be invoked once.
type Conversion struct {
	reader BlockReader
	writer BlockWriter
	used   atomic.Bool
}

// NewConversion pairs a reader and writer for a single conversion pass.
func NewConversion(reader BlockReader, writer BlockWriter) *Conversion {
	return &Conversion{reader: reader, writer: writer}
}

// Run pumps blocks from the reader to the writer under the writer's
// backpressure signal. It returns nil only after the writer confirms
// finalization, so a truncated output file is never reported as success.
func (c *Conversion) Run(ctx context.Context) error {
	if !c.used.CompareAndSwap(false, true) {
		return ErrConversionReused
	}
	defer c.reader.Close()

	for {
		select {
		case <-ctx.Done():
			c.writer.Abort()
			return ctx.Err()
		case _, ok := <-c.writer.Ready():
			if !ok {
				c.writer.Abort()
				return errors.New("writer closed before source was exhausted")
			}
		}

		block, err := c.reader.Next(ctx)
		if errors.Is(err, io.EOF) {
			if err := c.writer.Finalize(ctx); err != nil {
				return fmt.Errorf("finalize output: %w", err)
			}
			return nil
		}
		if err != nil {
			c.writer.Abort()
			return fmt.Errorf("read source block: %w", err)
		}

		if err := c.writer.Write(block); err != nil {
			c.writer.Abort()
			return fmt.Errorf("write block: %w", err)
		}
	}
}
