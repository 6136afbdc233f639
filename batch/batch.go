// Package batch runs a set of independent PIO programs concurrently, one
// pioemu.Emulate run per goroutine, collecting results with an
// errgroup.Group the way sarchlab-m2sim2's akita-based harness fans out
// independent simulation runs. Each run still drives its own
// single-threaded cooperative sequence; the concurrency here is across
// runs, never within one.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rp2040pio/emulator/pioemu"
)

// Program is one unit of work: an opcode listing plus the options to run
// it with.
type Program struct {
	Name     string
	Opcodes  []uint16
	StopWhen pioemu.StopWhen
	Options  []pioemu.Option
}

// Result is the outcome of running one Program to completion.
type Result struct {
	Name   string
	Cycles int
	Final  pioemu.State
}

// Run executes every program concurrently and returns one Result per
// program, in the same order as programs. It returns the first error
// encountered (from Emulate's synchronous validation) and cancels the
// remaining in-flight runs. A panicking input source is not recovered
// here: the panic ends the whole process rather than becoming an error.
func Run(ctx context.Context, programs []Program) ([]Result, error) {
	results := make([]Result, len(programs))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range programs {
		i, p := i, p
		g.Go(func() error {
			seq, err := pioemu.Emulate(p.Opcodes, p.StopWhen, p.Options...)
			if err != nil {
				return fmt.Errorf("batch: %s: %w", p.Name, err)
			}
			cycles := 0
			var final pioemu.State
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				_, after, ok := seq.Next()
				if !ok {
					break
				}
				final = after
				cycles++
			}
			results[i] = Result{Name: p.Name, Cycles: cycles, Final: final}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
