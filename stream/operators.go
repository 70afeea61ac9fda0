package stream

import (
	"context"
	"fmt"
)

// Step is a pure transformation applied to an emitted value before it
// reaches the subscriber.
type Step[T any] func(T) (T, error)

// Pipe applies steps to the value emitted by p, in the order supplied, at
// delivery time. The returned producer leaves p untouched: subscribing to
// the result activates p exactly once, and the steps never trigger the
// upstream side effect themselves.
//
// A step returning an error, or panicking, is surfaced to the subscriber
// as OnError, and the success branch is suppressed for that activation.
func Pipe[T any](p *Producer[T], steps ...Step[T]) *Producer[T] {
	return &Producer[T]{
		subscribe: func(ctx context.Context, sub Subscriber[T]) {
			p.subscribe(ctx, Subscriber[T]{
				OnValue: func(v T) {
					out, err := applySteps(v, steps)
					if err != nil {
						emitError(sub, err)
						return
					}
					if sub.OnValue != nil {
						sub.OnValue(out)
					}
				},
				OnComplete: sub.OnComplete,
				OnError:    sub.OnError,
			})
		},
	}
}

// Map transforms the emitted value with fn, changing the emission type.
// Same error boundary as Pipe: an fn error or panic becomes OnError.
func Map[I, O any](p *Producer[I], fn func(I) (O, error)) *Producer[O] {
	return &Producer[O]{
		subscribe: func(ctx context.Context, sub Subscriber[O]) {
			p.subscribe(ctx, Subscriber[I]{
				OnValue: func(v I) {
					out, err := applyFunc(v, fn)
					if err != nil {
						emitError(sub, err)
						return
					}
					if sub.OnValue != nil {
						sub.OnValue(out)
					}
				},
				OnComplete: sub.OnComplete,
				OnError:    sub.OnError,
			})
		},
	}
}

// Tap observes the emitted value without altering it. Use for logging or
// metrics on the success path.
func Tap[T any](p *Producer[T], fn func(T)) *Producer[T] {
	return Pipe(p, func(v T) (T, error) {
		fn(v)
		return v, nil
	})
}

// Filter builds a step that keeps the elements of a slice satisfying pred,
// preserving relative order. A panicking predicate (e.g. on a malformed
// element) is reported through the step's error return and ends up on the
// subscriber's error channel. The slice type parameter is usually supplied
// explicitly: Filter[Posts](pred).
func Filter[S ~[]E, E any](pred func(E) bool) Step[S] {
	return func(in S) (out S, err error) {
		defer func() {
			if r := recover(); r != nil {
				out = nil
				err = fmt.Errorf("stream: filter predicate panicked: %v", r)
			}
		}()
		out = make(S, 0, len(in))
		for _, e := range in {
			if pred(e) {
				out = append(out, e)
			}
		}
		return out, nil
	}
}

// applySteps runs steps left to right under a single error boundary.
func applySteps[T any](v T, steps []Step[T]) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			out = zero
			err = fmt.Errorf("stream: transform step panicked: %v", r)
		}
	}()
	out = v
	for _, step := range steps {
		out, err = step(out)
		if err != nil {
			var zero T
			return zero, err
		}
	}
	return out, nil
}

// applyFunc runs a single transform under the same boundary as applySteps.
func applyFunc[I, O any](v I, fn func(I) (O, error)) (out O, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero O
			out = zero
			err = fmt.Errorf("stream: transform step panicked: %v", r)
		}
	}()
	return fn(v)
}
