// Package batch balances many equations concurrently.
package batch

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/reactions"
)

// Balancer balances a single equation. *reactions.Balancer implements it.
type Balancer interface {
	Balance(equation string) (*reactions.Equation, error)
}

// Func adapts a function to a Balancer.
type Func func(equation string) (*reactions.Equation, error)

// Balance calls f.
func (f Func) Balance(equation string) (*reactions.Equation, error) {
	return f(equation)
}

// Options configures Run.
type Options struct {
	// Workers is the maximum number of equations balanced at once. Zero or
	// negative means no limit.
	Workers int
	// FailFast stops the run at the first equation that fails.
	FailFast bool
}

// Result is the outcome of balancing one equation.
type Result struct {
	// Index is the position of the equation in the input.
	Index int
	// Input is the equation as given.
	Input string
	// Equation is the balanced equation, or nil if Err is not nil.
	Equation *reactions.Equation
	// Err is the reason the equation was not balanced.
	Err error
}

// ErrSkipped is the error of results that were never attempted because the
// run stopped early.
var ErrSkipped = errors.New("skipped")

// Run balances every equation with b. The results are in input order. The
// error aggregates the failure of every equation that was attempted, along
// with the context's error if it ended the run.
func Run(ctx context.Context, b Balancer, equations []string, opts Options) ([]Result, error) {
	results := make([]Result, len(equations))
	for i, s := range equations {
		results[i] = Result{Index: i, Input: s, Err: ErrSkipped}
	}

	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i, s := range equations {
		if gctx.Err() != nil {
			break
		}
		i, s := i, s
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			eq, err := b.Balance(s)
			results[i].Equation, results[i].Err = eq, err
			if err != nil && opts.FailFast {
				return err
			}
			return nil
		})
	}
	_ = g.Wait()

	var errs *multierror.Error
	for _, r := range results {
		if r.Err != nil && !errors.Is(r.Err, ErrSkipped) {
			errs = multierror.Append(errs, fmt.Errorf("equation %d: %w", r.Index+1, r.Err))
		}
	}
	if err := ctx.Err(); err != nil {
		errs = multierror.Append(errs, err)
	}
	return results, errs.ErrorOrNil()
}

// Failed counts the results with errors, including skipped ones.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
