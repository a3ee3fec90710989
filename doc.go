// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pin provides an owned container for self-referential values.
//
// A self-referential value owns some data and simultaneously holds
// references into that same data. Returning such a value from the function
// that built it is normally impossible: the locals it points into die with
// the call frame. pin solves this by never letting that frame die. The
// builder runs on its own goroutine, publishes its payload at a single
// capture point, and then parks forever. The parked frame keeps every
// referenced local alive and the container exposes the payload through
// accessors scoped to its own lifetime.
//
// # Design Philosophy
//
// pin provides:
//   - A single-owner [Box] that freezes a builder frame at its capture point
//   - A one-shot, consuming [Capturer] handle as the only way to publish
//   - Structural lifetime rebinding via the F-bounded [Rebindable] interface
//
// There is no scheduler and no resumption: exactly one checkpoint is ever
// reached, and the frame is released only when the Box is closed. The
// library is a construction primitive, not a coroutine runtime.
//
// # Construction Protocol
//
// [New] spawns the builder on a fresh goroutine and drives it until one of
// three recognized outcomes:
//
//   - the builder invokes [Capturer.Capture] — the payload address is
//     recorded and New returns a live Box
//   - the builder returns without capturing — New panics (contract
//     violation, see Misuse)
//   - the builder panics — the panic value crosses the frame boundary and
//     re-panics in New's caller
//
// Per Box the life cycle is Unbuilt → Building → Captured, with Captured
// terminal. After New returns, the frame goroutine is permanently parked:
// it is never stepped again, only released by [Box.Close].
//
// # Capture Handle
//
// [Capturer.Capture] publishes exactly one value and never returns. The
// payload is moved into the capture frame itself, so everything it
// references — builder locals included — stays reachable for as long as the
// frame is parked. Consuming semantics fall out of the control flow: code
// after a Capture call is unreachable on the builder goroutine, so a second
// sequential use cannot be written. A copied handle used from another
// goroutine trips an atomic one-shot guard and panics.
//
// # Accessors
//
// [Box.Ref] and [Box.Mut] return the payload address with validity tied to
// the Box: the address is stable for the whole Box lifetime because the
// frame it points into can neither move (addresses in Go stay valid once
// taken) nor be collected (the parked goroutine roots it). Go draws no
// static shared/exclusive distinction, so both return *T; the pair marks
// read and write intent at call sites and the usual rules for sharing an
// owned Go object apply.
//
// # Rebinding
//
// The builder constructs the payload inside a scope whose lifetime cannot
// be named outside it. Re-expressing the payload as "valid for as long as
// the Box lives" is a structural, member-wise transformation that reuses
// every reference field untouched. Payload structs implement it with a
// mechanical per-field method:
//
//   - [Rebindable]: F-bounded interface, Rebind() T
//   - [Rebind]: applies a payload's own rebinding
//   - [DeriveRebind]: reflection-built field-wise rebinder for struct types
//   - cmd/rebindgen: emits per-field Rebind methods at generate time
//
// New applies Rebind exactly once, immediately after capture. For flat
// payloads (a plain view into owned data) rebinding is the identity and no
// method is needed.
//
// # Close Semantics
//
// [Box.Close] releases the parked frame. The frame goroutine exits through
// runtime.Goexit, so the builder's deferred calls run — owned resources are
// torn down exactly as if the builder had returned — while the code after
// the capture point never executes. Close is idempotent; accessor use after
// Close panics. A Box dropped without Close is released by a GC cleanup
// hook, so an unclosed Box does not leak its frame goroutine permanently.
//
// # Misuse
//
// All contract violations surface as panics prefixed "pin:". Never
// capturing panics in New. Using a handle twice, or using the zero handle,
// panics at the call site. A builder that blocks before reaching the
// capture point makes New diverge: construction is not interruptible.
// Capturing from a goroutine other than the builder's is memory-safe (the
// parked goroutine still roots the payload) but is unsupported misuse.
//
// # Example
//
//	heart := pin.New(func(c pin.Capturer[[]byte]) {
//		data := []byte{240, 159, 146, 150}
//		c.Capture(data[:])
//	})
//	defer heart.Close()
//
//	fmt.Println(string(*heart.Ref())) // 💖
package pin
