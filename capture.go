// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pin

// Capturer is the one-shot handle handed to a builder by [New]. Consuming
// it with [Capturer.Capture] is the only way to satisfy the capture point.
//
// The handle is affine: it can be used at most once. Sequential reuse is
// unreachable by construction (Capture never returns); concurrent reuse of
// a copied handle panics. The zero Capturer is unusable.
type Capturer[T any] struct {
	f *frame[T]
}

// Capture publishes val as the frame's payload and parks the computation
// indefinitely. It never returns.
//
// The value is moved into the capture frame, so val and everything it
// references stay alive while the frame is parked. When the owning [Box]
// is closed the goroutine exits through runtime.Goexit: deferred calls
// made by the builder run, code after the Capture call does not.
//
// Panics with "pin: capture handle used twice" if a copied handle was
// already consumed and with "pin: use of zero capture handle" on the zero
// value.
func (c Capturer[T]) Capture(val T) {
	f := c.f
	if f == nil {
		panic("pin: use of zero capture handle")
	}
	if f.used.Add(1) != 1 {
		panic("pin: capture handle used twice")
	}
	f.park(&val)
}
