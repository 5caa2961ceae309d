package async

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel executes tasks concurrently and waits for all of them.
// A failing task does not cancel its siblings: every task runs to completion
// and every failure is returned, joined, in task order.
//
// Example:
//
//	tasks := []Task{
//	    {Name: "create role admin", Func: createAdmin},
//	    {Name: "create role agent", Func: createAgent},
//	}
//	if err := RunParallel(ctx, tasks); err != nil {
//	    return err
//	}
func RunParallel(ctx context.Context, tasks []Task) error {
	return RunParallelLimit(ctx, tasks, 0)
}

// RunParallelLimit is RunParallel with at most limit tasks in flight.
// A limit <= 0 means no limit.
func RunParallelLimit(ctx context.Context, tasks []Task, limit int) error {
	if len(tasks) == 0 {
		return nil
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	var mu sync.Mutex
	errs := make([]error, len(tasks))

	for i, task := range tasks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				mu.Lock()
				errs[i] = fmt.Errorf("%s: %w", task.Name, err)
				mu.Unlock()
				return nil
			}
			if err := task.Func(ctx); err != nil {
				mu.Lock()
				errs[i] = fmt.Errorf("%s: %w", task.Name, err)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return errors.Join(errs...)
}
