package stream

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Subscriber is the set of callbacks observing a producer's outcome.
// Nil callbacks are skipped; the emission protocol still advances.
type Subscriber[T any] struct {
	// OnValue receives the emitted value. Called at most once.
	OnValue func(T)
	// OnError receives the failure. Called at most once, and never
	// after OnValue has been delivered.
	OnError func(error)
	// OnComplete signals successful termination, immediately after OnValue.
	OnComplete func()
}

// Producer is a deferred computation that, once a Subscriber attaches,
// performs its work and delivers at most one value-then-complete pair or
// one error. Construction performs no work.
type Producer[T any] struct {
	subscribe func(ctx context.Context, sub Subscriber[T])
}

// Subscribe activates the producer. The call returns without waiting for
// delivery; callbacks fire on whatever goroutine the underlying work
// completes on. Each Subscribe is an independent activation.
func (p *Producer[T]) Subscribe(ctx context.Context, sub Subscriber[T]) {
	p.subscribe(ctx, guard(sub))
}

// Defer creates a producer from a result-returning function. The function
// runs once per activation, on its own goroutine, with the subscriber's
// context. A nil error delivers OnValue then OnComplete; a non-nil error
// delivers OnError. A panic inside fn is recovered and routed to OnError.
func Defer[T any](fn func(ctx context.Context) (T, error)) *Producer[T] {
	return &Producer[T]{
		subscribe: func(ctx context.Context, sub Subscriber[T]) {
			go func() {
				defer recoverToError(sub)
				if err := ctx.Err(); err != nil {
					emitError(sub, err)
					return
				}
				val, err := fn(ctx)
				if err != nil {
					emitError(sub, err)
					return
				}
				emitValue(sub, val)
			}()
		},
	}
}

// Just creates a producer that delivers v synchronously on Subscribe.
func Just[T any](v T) *Producer[T] {
	return &Producer[T]{
		subscribe: func(_ context.Context, sub Subscriber[T]) {
			emitValue(sub, v)
		},
	}
}

// Fail creates a producer that delivers err synchronously on Subscribe.
func Fail[T any](err error) *Producer[T] {
	return &Producer[T]{
		subscribe: func(_ context.Context, sub Subscriber[T]) {
			emitError(sub, err)
		},
	}
}

// Collect activates the producer and blocks until it terminates, converting
// push delivery back into a return value. If ctx is cancelled before the
// producer terminates, Collect returns ctx.Err().
func Collect[T any](ctx context.Context, p *Producer[T]) (T, error) {
	type outcome struct {
		val T
		err error
	}
	// Buffered so delivery never blocks on an abandoned Collect.
	done := make(chan outcome, 1)
	var val T

	p.Subscribe(ctx, Subscriber[T]{
		OnValue:    func(v T) { val = v },
		OnComplete: func() { done <- outcome{val: val} },
		OnError:    func(err error) { done <- outcome{err: err} },
	})

	select {
	case out := <-done:
		return out.val, out.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// guard wraps a subscriber with the single-emission state machine:
// live -> valued -> terminal on the success branch, live -> terminal on the
// error branch. Callbacks arriving after a terminal state are dropped.
func guard[T any](sub Subscriber[T]) Subscriber[T] {
	const (
		stateLive = iota
		stateValued
		stateTerminal
	)
	var state atomic.Int32

	return Subscriber[T]{
		OnValue: func(v T) {
			if !state.CompareAndSwap(stateLive, stateValued) {
				return
			}
			if sub.OnValue != nil {
				sub.OnValue(v)
			}
		},
		OnComplete: func() {
			if !state.CompareAndSwap(stateValued, stateTerminal) {
				return
			}
			if sub.OnComplete != nil {
				sub.OnComplete()
			}
		},
		OnError: func(err error) {
			if !state.CompareAndSwap(stateLive, stateTerminal) {
				return
			}
			if sub.OnError != nil {
				sub.OnError(err)
			}
		},
	}
}

// emitValue delivers the success branch: OnValue then OnComplete.
func emitValue[T any](sub Subscriber[T], v T) {
	if sub.OnValue != nil {
		sub.OnValue(v)
	}
	if sub.OnComplete != nil {
		sub.OnComplete()
	}
}

// emitError delivers the failure branch.
func emitError[T any](sub Subscriber[T], err error) {
	if sub.OnError != nil {
		sub.OnError(err)
	}
}

// recoverToError converts a panic into an OnError delivery. The guard drops
// it if a terminal callback already fired.
func recoverToError[T any](sub Subscriber[T]) {
	if r := recover(); r != nil {
		emitError(sub, fmt.Errorf("stream: recovered panic: %v", r))
	}
}
