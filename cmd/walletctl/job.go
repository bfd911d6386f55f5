package main

import (
	"context"
	"fmt"
)

// job runs one command in the background. Stop cancels the command's context
// and waits for it to return, so a request already sent is seen through.
type job struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func startJob(run func(ctx context.Context) int, finish func(code int)) *job {
	ctx, cancel := context.WithCancel(context.Background())
	j := &job{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(j.done)
		finish(run(ctx))
	}()

	return j
}

func (j *job) Stop(ctx context.Context) error {
	j.cancel()

	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("command still running: %w", ctx.Err())
	}
}
