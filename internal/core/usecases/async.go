package usecases

import (
	"context"
	"log/slog"
	"time"
)

// Result is the completion of one external call, stamped with the
// generation that was current when the call was issued.
type Result[T any] struct {
	Gen   uint64
	Value T
	Err   error
}

// submit runs call off the loop and delivers its Result to resolve on the
// loop. resolve is the presenter's single resolution point and must check
// the generation before touching shared state.
func submit[T any](c *MapController, gen uint64, timeout time.Duration, call func(ctx context.Context) (T, error), resolve func(Result[T])) {
	c.sched.Go(func() {
		ctx, cancel := context.WithTimeout(c.ctx, timeout)
		defer cancel()

		v, err := call(ctx)
		res := Result[T]{Gen: gen, Value: v, Err: err}
		if postErr := c.sched.Post(func() { resolve(res) }); postErr != nil {
			c.log.Debug("completion dropped after session end", slog.Uint64("generation", gen))
		}
	})
}
