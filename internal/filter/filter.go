package filter

import (
	"context"
	"log/slog"

	"github.com/hupe1980/imdbsieve/internal/frame"
	"github.com/hupe1980/imdbsieve/internal/logging"
)

// Filter is the interface for all title filters.
// Filters are stateless: they receive a frame and return a new one
// without modifying the input.
type Filter interface {
	// Name is a short human-readable description used in logs and summaries.
	Name() string
	// Apply runs the filter on the given titles.
	Apply(ctx context.Context, titles *frame.Frame) (*frame.Frame, error)
}

// Step records the effect of one filter in a chain.
type Step struct {
	Name string `json:"name"`
	In   int    `json:"in"`
	Out  int    `json:"out"`
}

// Dropped returns the number of rows the step removed.
func (s Step) Dropped() int {
	return s.In - s.Out
}

// Result holds the outcome of a chain application.
type Result struct {
	// Included are the titles that passed every filter.
	Included *frame.Frame
	// Steps lists each applied filter in order.
	Steps []Step
}

// Excluded returns the total number of rows removed by the chain.
func (r *Result) Excluded() int {
	n := 0
	for _, s := range r.Steps {
		n += s.Dropped()
	}

	return n
}

// Chain applies multiple filters sequentially, passing the included
// titles from each filter as input to the next.
type Chain struct {
	filters []Filter
}

// NewChain creates a filter chain from the given filters.
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// Append adds filters to the end of the chain.
func (c *Chain) Append(filters ...Filter) {
	c.filters = append(c.filters, filters...)
}

// Len returns the number of filters in the chain.
func (c *Chain) Len() int {
	return len(c.filters)
}

// Names returns the filter names in application order.
func (c *Chain) Names() []string {
	names := make([]string, 0, len(c.filters))
	for _, f := range c.filters {
		names = append(names, f.Name())
	}

	return names
}

// Apply runs all filters in order and returns the combined result.
func (c *Chain) Apply(ctx context.Context, titles *frame.Frame) (*Result, error) {
	logger := logging.FromContext(ctx)
	res := &Result{Included: titles}

	for _, f := range c.filters {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		in := res.Included.Len()

		out, err := f.Apply(ctx, res.Included)
		if err != nil {
			return nil, err
		}

		res.Included = out
		res.Steps = append(res.Steps, Step{Name: f.Name(), In: in, Out: out.Len()})

		logger.Info("filter applied", slog.String("filter", f.Name()), logging.Rows(in, out.Len()))
	}

	return res, nil
}
