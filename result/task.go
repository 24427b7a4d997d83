package result

import "context"

// Task is a deferred computation producing a Result. Constructing a Task,
// or composing it with MapTask/ChainTask, performs no work.
type Task[T any] struct {
	run func(ctx context.Context) Result[T]
}

// NewTask wraps fn. fn runs once per call to Run.
func NewTask[T any](fn func(ctx context.Context) Result[T]) Task[T] {
	return Task[T]{run: fn}
}

// Of returns a Task that succeeds with value.
func Of[T any](value T) Task[T] {
	return NewTask(func(context.Context) Result[T] { return Ok(value) })
}

// Failed returns a Task that fails with err.
func Failed[T any](err error) Task[T] {
	return NewTask(func(context.Context) Result[T] { return Fail[T](err) })
}

// FromResult lifts an already computed Result into a Task.
func FromResult[T any](r Result[T]) Task[T] {
	return NewTask(func(context.Context) Result[T] { return r })
}

// TryCatch lifts a (value, error) function into a Task. When onErr is not nil
// it converts the returned error before it enters the failure arm.
func TryCatch[T any](fn func(ctx context.Context) (T, error), onErr func(error) error) Task[T] {
	return NewTask(func(ctx context.Context) Result[T] {
		v, err := fn(ctx)
		if err != nil {
			if onErr != nil {
				err = onErr(err)
			}
			return Fail[T](err)
		}
		return Ok(v)
	})
}

// Run executes the task synchronously and returns its Result.
// A zero Task fails instead of panicking.
func (t Task[T]) Run(ctx context.Context) Result[T] {
	if t.run == nil {
		return Fail[T](errNilTask)
	}
	return t.run(ctx)
}

// Start runs the task on its own goroutine and returns a Future for the outcome.
func (t Task[T]) Start(ctx context.Context) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.res = t.Run(ctx)
	}()
	return f
}

// MapTask transforms the success value of t once it runs.
func MapTask[T, U any](t Task[T], fn func(T) U) Task[U] {
	return NewTask(func(ctx context.Context) Result[U] {
		return Map(t.Run(ctx), fn)
	})
}

// MapTaskErr transforms the failure of t once it runs.
func MapTaskErr[T any](t Task[T], fn func(error) error) Task[T] {
	return NewTask(func(ctx context.Context) Result[T] {
		return MapErr(t.Run(ctx), fn)
	})
}

// ChainTask sequences a dependent task. next is only built and run when t succeeds.
func ChainTask[T, U any](t Task[T], next func(T) Task[U]) Task[U] {
	return NewTask(func(ctx context.Context) Result[U] {
		r := t.Run(ctx)
		if r.err != nil {
			return Result[U]{err: r.err}
		}
		return next(r.value).Run(ctx)
	})
}

// ChainResult sequences a synchronous dependent step after t.
func ChainResult[T, U any](t Task[T], next func(T) Result[U]) Task[U] {
	return NewTask(func(ctx context.Context) Result[U] {
		return Chain(t.Run(ctx), next)
	})
}

// Future is the handle of a started Task.
type Future[T any] struct {
	done chan struct{}
	res  Result[T]
}

// Await blocks until the task finishes and returns its Result.
// Await may be called any number of times.
func (f *Future[T]) Await() Result[T] {
	<-f.done
	return f.res
}

// Done is closed once the Result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}
