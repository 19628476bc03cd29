package shodan

import (
	"context"
	"fmt"
	"sync"

	"github.com/netscout/shodan/internal/dispatch"
	clienterrors "github.com/netscout/shodan/internal/errors"
)

// Call is one independent request run by Batch, e.g.
//
//	func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
//		return c.Host(ctx, "8.8.8.8", shodan.HostOptions{})
//	}
type Call func(ctx context.Context, c *Client) (*Response, error)

// Result is the outcome of the Call at position Index.
// Response.RequestID or Error.RequestID correlates it with debug logs.
type Result struct {
	Index    int
	Response *Response
	Err      error
}

// batchKey marks a context handed to a Call by Batch. The value is the
// owning *Client.
type batchKey struct{}

// Batch runs calls concurrently on the client's worker pool and returns one
// Result per call in input order. A failing or panicking call only affects
// its own Result. Nothing is retried.
//
// A Call that itself invokes Batch on the same client runs its inner calls
// one after another on its own worker, since waiting for other workers could
// deadlock the pool.
//
// Cancelling ctx makes the calls not yet sent fail with a transport error.
func (c *Client) Batch(ctx context.Context, calls ...Call) []Result {
	results := make([]Result, len(calls))
	if len(calls) == 0 {
		return results
	}
	if owner, _ := ctx.Value(batchKey{}).(*Client); owner == c {
		for i, call := range calls {
			c.runCall(ctx, i, call, results)
		}
		return results
	}

	pool, err := c.dispatcher()
	if err != nil {
		for i := range results {
			results[i] = Result{Index: i, Err: err}
		}
		return results
	}

	// Jobs always run, even after ctx is cancelled, so every slot gets written.
	// Each call still sees the caller's ctx.
	submitCtx := context.WithoutCancel(ctx)
	callCtx := context.WithValue(ctx, batchKey{}, c)

	var wg sync.WaitGroup
	for i, call := range calls {
		if call == nil {
			c.runCall(callCtx, i, nil, results)
			continue
		}

		i, call := i, call
		wg.Add(1)
		job := dispatch.JobFunc(func(context.Context) error {
			defer wg.Done()
			return c.runCall(callCtx, i, call, results)
		})
		if err := pool.Submit(submitCtx, job); err != nil {
			wg.Done()
			results[i] = Result{Index: i, Err: err}
		}
	}
	wg.Wait()
	return results
}

// runCall fills results[i], turning a nil call or a panic into an error.
func (c *Client) runCall(ctx context.Context, i int, call Call, results []Result) (err error) {
	results[i].Index = i
	if call == nil {
		results[i].Err = clienterrors.NewConfigError("batch", fmt.Errorf("%w: call %d is nil", clienterrors.ErrInvalidParam, i))
		return results[i].Err
	}
	defer func() {
		if r := recover(); r != nil {
			err = &dispatch.PanicError{Value: r}
			results[i].Response, results[i].Err = nil, err
		}
	}()
	results[i].Response, results[i].Err = call(ctx, c)
	return results[i].Err
}

func (c *Client) dispatcher() (*dispatch.Pool, error) {
	c.poolMu.Lock()
	defer c.poolMu.Unlock()
	if c.closed() {
		return nil, ErrClientClosed
	}
	if c.pool == nil {
		c.pool = dispatch.NewPool(c.batchCfg)
	}
	return c.pool, nil
}
