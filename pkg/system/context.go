package system

import (
	"context"
	"time"
)

// Executes an operation with a bounded wait. It manages the lifecycle
// of the operation, ensuring proper completion or prompt interruption.
//
// The function handles three key scenarios:
//   - Normal completion: the operation finishes and its error is returned as is
//   - Deadline reached: the operation's context is cancelled and ctx's error is returned
//   - Parent cancellation: same as the deadline case
//
// A timeout of zero or less disables the bound; only the parent context applies.
// The operation is always waited for before returning so that any resource it
// holds (temporary files, child processes) is released by the time the caller
// regains control.
func RunWithTimeout(ctx context.Context, timeout time.Duration, operation func(context.Context) error) error {
	// Fast feedback if the job was cancelled before it started.
	if err := ctx.Err(); err != nil {
		return err
	}

	var (
		opCtx  context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		opCtx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		opCtx, cancel = context.WithCancel(ctx)
	}
	// Ensure the operation context is always cancelled to prevent context leak.
	defer cancel()

	// Buffered so the goroutine can always deliver its result and exit.
	done := make(chan error, 1)

	go func() {
		done <- operation(opCtx)
		close(done)
	}()

	select {
	case err := <-done:
		return err
	case <-opCtx.Done():
		// Signal the operation to stop, then wait for it to unwind.
		cancel()
		err := <-done
		if ctxErr := opCtx.Err(); ctxErr != nil && err == nil {
			return ctxErr
		}
		return err
	}
}
