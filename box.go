// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pin

import (
	"runtime"
	"sync/atomic"
)

// Builder constructs a self-referential payload on the frame goroutine.
// It must build whatever owned data the payload refers to and then consume
// the handle with [Capturer.Capture] exactly once.
type Builder[T any] func(Capturer[T])

// Box owns a builder frame frozen at its capture point and the address of
// the payload published there.
//
// The Box is the sole owner of the frame: the payload address stays valid
// exactly as long as the Box is open, because the parked frame can neither
// be collected nor observed to move. Obtain a Box with [New]; release the
// frame with [Box.Close].
type Box[T any] struct {
	f       *frame[T]
	ptr     *T
	closed  atomic.Bool
	cleanup runtime.Cleanup
}

// New constructs a self-referential value using the provided builder.
//
// The builder runs on a dedicated frame goroutine. New drives it until the
// capture point is satisfied and then returns; the frame stays parked for
// the whole Box lifetime. If the payload implements Rebind() T it is
// rebound in place once, re-expressing its references as owned by the Box.
//
// Contract violations surface here: a builder that returns without
// capturing panics with "pin: builder returned without capturing a value",
// and a builder panic re-panics in the caller with its original value.
// A builder that blocks before capturing makes New block with it.
func New[T any](build Builder[T]) *Box[T] {
	f := newFrame[T]()
	go f.run(build)

	switch o := f.drive(); o.kind {
	case outcomeCaptured:
	case outcomeReturned:
		panic("pin: builder returned without capturing a value")
	case outcomePanicked:
		panic(o.panicValue)
	}

	ptr := f.payload.Load()
	if r, ok := any(*ptr).(interface{ Rebind() T }); ok {
		// The single sanctioned rebind call site: the payload's scope
		// is re-expressed as the Box's own. Bytes do not change.
		*ptr = r.Rebind()
	}

	b := &Box[T]{f: f, ptr: ptr}
	// Release the frame if the Box is dropped without Close.
	b.cleanup = runtime.AddCleanup(b, func(fr *frame[T]) { fr.shutdown() }, f)
	return b
}

// Ref returns the shared view of the payload. The address is identical
// across calls for the whole Box lifetime. Panics after Close.
func (b *Box[T]) Ref() *T {
	if b.closed.Load() {
		panic("pin: box already closed")
	}
	return b.ptr
}

// Mut returns the exclusive view of the payload, for mutation in place.
// Same address as [Box.Ref]; Go enforces no static exclusivity, so the
// method marks write intent and the caller keeps ordinary sharing
// discipline. Panics after Close.
func (b *Box[T]) Mut() *T {
	if b.closed.Load() {
		panic("pin: box already closed")
	}
	return b.ptr
}

// Close releases the parked frame. The frame goroutine exits through
// runtime.Goexit, running the builder's deferred calls; code after the
// capture point never executes. Close is idempotent. Accessor use after
// Close panics.
func (b *Box[T]) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}
	b.cleanup.Stop()
	b.f.shutdown()
}
