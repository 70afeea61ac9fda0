// Package stream provides a push-based, single-emission producer abstraction.
//
// A Producer is inert until a Subscriber attaches: construction performs no
// work, and re-subscribing a freshly built producer re-runs the underlying
// computation. Per activation a producer delivers at most one of:
//
//   - OnValue followed by OnComplete (success), or
//   - OnError (failure).
//
// Never both branches, never more than once each. The guard at the
// subscription boundary enforces this even against misbehaving sources.
//
// # Operators
//
//   - Pipe: apply ordered Collection -> Collection steps at delivery time
//   - Map: transform the emitted value (shape-changing)
//   - Tap: observe the value without altering it (logging hook)
//   - Filter: build an order-preserving predicate step over slices
//
// Steps never run until the upstream producer emits, and they never trigger
// the upstream side effect themselves. A step error (or panic) is routed
// to the subscriber's OnError, so callers handle transform faults through the
// same channel as transport faults.
//
// # Usage
//
//	p := stream.Defer(func(ctx context.Context) ([]int, error) {
//	    return fetch(ctx)
//	})
//	small := stream.Pipe(p, stream.Filter[[]int](func(n int) bool { return n < 10 }))
//	small.Subscribe(ctx, stream.Subscriber[[]int]{
//	    OnValue:    func(vs []int) { render(vs) },
//	    OnError:    func(err error) { log.Error(err) },
//	    OnComplete: func() {},
//	})
//
// Collect converts push delivery back into an ordinary return value for
// hosts that prefer blocking semantics:
//
//	vs, err := stream.Collect(ctx, small)
package stream
