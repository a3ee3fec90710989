// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pin

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// outcomeKind classifies the recognized suspension of a builder frame.
// Exactly one outcome is ever delivered per frame.
type outcomeKind uint8

const (
	// outcomeCaptured: the capture point was satisfied; the payload
	// address is published and the frame is parked.
	outcomeCaptured outcomeKind = iota + 1

	// outcomeReturned: the builder ran to completion without capturing.
	outcomeReturned

	// outcomePanicked: the builder panicked; panicValue carries the value.
	outcomePanicked
)

// outcome is the driver-visible result of driving a frame.
type outcome struct {
	kind       outcomeKind
	panicValue any
}

// frame owns one builder goroutine and the handoff state around it.
//
// The goroutine is the suspended computation: it is started once, driven to
// exactly one recognized outcome, and — when that outcome is a capture —
// parked until released. While parked it roots the payload and every
// builder local the payload refers to.
type frame[T any] struct {
	// payload is the published address, set once inside park.
	payload atomic.Pointer[T]

	// used is the one-shot counter for the capture handle.
	used atomic.Uintptr

	// reported guards yield: at most one outcome is ever sent.
	reported atomic.Bool

	// parked distinguishes the released-Goexit exit path from a plain
	// return in the frame goroutine's final deferred function.
	parked atomic.Bool

	// yield carries the single outcome from the frame goroutine (or a
	// capturing goroutine) to the driver. Buffered so the reporter never
	// blocks if the driver is gone.
	yield chan outcome

	// release unparks the frame; closed exactly once by shutdown.
	release chan struct{}

	// done is closed when the frame goroutine has exited, deferred
	// calls included.
	done chan struct{}

	releaseOnce sync.Once
}

func newFrame[T any]() *frame[T] {
	return &frame[T]{
		yield:   make(chan outcome, 1),
		release: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// run executes the builder on the frame goroutine.
//
// The final deferred function classifies how the builder left:
// panic → outcomePanicked, plain return → outcomeReturned, release-driven
// runtime.Goexit after a park → nothing left to report.
func (f *frame[T]) run(build func(Capturer[T])) {
	defer close(f.done)
	defer func() {
		if v := recover(); v != nil {
			f.report(outcome{kind: outcomePanicked, panicValue: v})
			return
		}
		if f.parked.Load() {
			return
		}
		f.report(outcome{kind: outcomeReturned})
	}()
	build(Capturer[T]{f: f})
}

// drive blocks until the frame reaches its recognized outcome.
// Called exactly once, from New, synchronously.
func (f *frame[T]) drive() outcome {
	return <-f.yield
}

// report delivers an outcome if none has been delivered yet.
func (f *frame[T]) report(o outcome) bool {
	if !f.reported.CompareAndSwap(false, true) {
		return false
	}
	f.yield <- o
	return true
}

// park publishes the payload address and suspends the calling goroutine
// until the frame is released. It never returns: release exits the
// goroutine through runtime.Goexit, which runs the builder's deferred
// calls and skips any code after the capture point.
func (f *frame[T]) park(p *T) {
	f.payload.Store(p)
	f.parked.Store(true)
	if !f.report(outcome{kind: outcomeCaptured}) {
		panic("pin: capture outside of construction")
	}
	<-f.release
	runtime.Goexit()
}

// shutdown releases the parked frame and waits for the frame goroutine to
// finish its deferred calls. Safe to call more than once and safe to call
// on a frame whose goroutine already exited.
func (f *frame[T]) shutdown() {
	f.releaseOnce.Do(func() { close(f.release) })
	<-f.done
}
