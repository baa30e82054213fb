package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ludo-technologies/srcmatch/domain"
)

// ParallelExecutorImpl implements the ParallelExecutor interface
type ParallelExecutorImpl struct {
	maxConcurrency int
	timeout        time.Duration
}

// NewParallelExecutor creates a new parallel executor without limits
func NewParallelExecutor() *ParallelExecutorImpl {
	return &ParallelExecutorImpl{}
}

// Execute runs all tasks and waits for them. The first task errors are
// joined into the returned error; a timeout or cancellation stops tasks that
// have not started yet.
func (pe *ParallelExecutorImpl) Execute(ctx context.Context, tasks []domain.ExecutableTask) error {
	if len(tasks) == 0 {
		return nil
	}

	if pe.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pe.timeout)
		defer cancel()
	}

	var semaphore chan struct{}
	if pe.maxConcurrency > 0 {
		semaphore = make(chan struct{}, pe.maxConcurrency)
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, task := range tasks {
		if semaphore != nil {
			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				wg.Wait()
				return pe.contextError(ctx)
			}
		}

		wg.Add(1)
		go func(t domain.ExecutableTask) {
			defer wg.Done()
			if semaphore != nil {
				defer func() { <-semaphore }()
			}

			if ctx.Err() != nil {
				return
			}
			if err := t.Execute(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("task %s failed: %w", t.Name(), err))
				mu.Unlock()
			}
		}(task)
	}

	wg.Wait()

	if ctx.Err() != nil {
		return pe.contextError(ctx)
	}
	if len(errs) > 0 {
		return fmt.Errorf("parallel execution failed with %d errors: %w", len(errs), errors.Join(errs...))
	}
	return nil
}

func (pe *ParallelExecutorImpl) contextError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("parallel execution timed out after %v: %w", pe.timeout, ctx.Err())
	}
	return ctx.Err()
}

// SetMaxConcurrency sets the maximum number of concurrent tasks, 0 for no limit
func (pe *ParallelExecutorImpl) SetMaxConcurrency(max int) {
	pe.maxConcurrency = max
}

// SetTimeout sets the timeout for all tasks, 0 for none
func (pe *ParallelExecutorImpl) SetTimeout(timeout time.Duration) {
	pe.timeout = timeout
}

// SimpleTask adapts a function to ExecutableTask
type SimpleTask struct {
	name    string
	execute func(context.Context) error
}

// NewSimpleTask creates a new simple task
func NewSimpleTask(name string, execute func(context.Context) error) *SimpleTask {
	return &SimpleTask{
		name:    name,
		execute: execute,
	}
}

// Name returns the name of the task
func (t *SimpleTask) Name() string {
	return t.name
}

// Execute runs the task
func (t *SimpleTask) Execute(ctx context.Context) error {
	if t.execute == nil {
		return fmt.Errorf("task %s has no execute function", t.name)
	}
	return t.execute(ctx)
}
