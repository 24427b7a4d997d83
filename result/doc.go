// Package result provides the two-armed outcome type used by every client in
// devportal, plus a deferred variant for composing calls before running them.
//
// A Result is either Ok(value) or Fail(err). Combinators never touch the arm
// they do not operate on:
//
//	r := result.Map(result.Ok(2), func(v int) int { return v * 2 }) // Ok(4)
//	f := result.Map(result.Fail[int](err), double)                  // Fail(err), double not called
//
// A Task wraps a computation that produces a Result. Building or chaining
// tasks performs no work; only Run (or Start followed by Await) does:
//
//	task := result.ChainTask(client.GetService("svc-1"), func(s Service) result.Task[Out] {
//	    return other.Call(s.ID)
//	})
//	out, err := task.Run(ctx).Unwrap()
//
// There is no cancellation at this layer beyond the context handed to Run.
package result
