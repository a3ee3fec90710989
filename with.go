// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pin

// Scoped ownership for boxes that do not outlive one call. This follows
// the bracket pattern: construct → use → release, where release is
// guaranteed to run even if use panics.

// With constructs a Box, passes it to use, and closes it when use
// returns or panics. The builder's deferred calls therefore run before
// With itself returns, making it safe for builders that hold external
// resources open across the capture point.
func With[T, R any](build Builder[T], use func(*Box[T]) R) R {
	b := New(build)
	defer b.Close()
	return use(b)
}

// WithRef is the common shorthand: the payload view, not the Box, is
// handed to use.
func WithRef[T, R any](build Builder[T], use func(*T) R) R {
	return With(build, func(b *Box[T]) R {
		return use(b.Ref())
	})
}
