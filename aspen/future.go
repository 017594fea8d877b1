package aspen

import "context"

// Future is the pending result of an asynchronous operation.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// async runs fn on its own goroutine.
func async[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = fn()
	}()
	return f
}

// rejected returns a Future that has already failed with err.
func rejected[T any](err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Await blocks until the operation completes or ctx is done. A result that
// has already arrived is returned even if ctx is done. Cancelling ctx stops
// the wait only; the operation keeps running.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	default:
	}

	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// wait blocks until the operation completes. The blocking operations use it
// so that a context ending mid-request surfaces through the transport as a
// classified failure rather than as a bare context error.
func (f *Future[T]) wait() (T, error) {
	<-f.done
	return f.value, f.err
}

// Done is closed when the operation completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}
