// Package fanout runs a page's independent backend reads concurrently.
//
// Join waits for every task. A failing task never cancels its siblings: the
// failure is logged and collected, and the other tasks still populate their
// part of the view.
package fanout

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Task is one named unit of a fan-out.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Do is shorthand for building a Task.
func Do(name string, run func(ctx context.Context) error) Task {
	return Task{Name: name, Run: run}
}

// Limit caps how many tasks of one Join run at the same time.
const Limit = 8

// Join runs all tasks concurrently and waits for them. It returns the
// combined failures (nil when every task succeeded); use multierr.Errors
// to inspect them one by one.
//
// The errgroup has no derived context, so a failure never cancels the
// tasks still running. Wait reports whether any task failed; the slot
// slice keeps every failure in task order.
func Join(ctx context.Context, log *zap.Logger, tasks ...Task) error {
	if log == nil {
		log = zap.NewNop()
	}

	var g errgroup.Group
	g.SetLimit(Limit)

	errs := make([]error, len(tasks))
	for i, t := range tasks {
		g.Go(func() error {
			if err := t.Run(ctx); err != nil {
				log.Error("fan-out task failed", zap.String("task", t.Name), zap.Error(err))
				errs[i] = fmt.Errorf("%s: %w", t.Name, err)
				return errs[i]
			}
			return nil
		})
	}
	if err := g.Wait(); err == nil {
		return nil
	}
	return multierr.Combine(errs...)
}
