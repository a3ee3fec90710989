// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pin_test

import (
	"testing"

	"code.hybscloud.com/pin"
)

func TestWithClosesOnReturn(t *testing.T) {
	cleaned := false
	got := pin.With(func(c pin.Capturer[[]byte]) {
		data := []byte("scoped")
		defer func() { cleaned = true }()
		c.Capture(data[:])
	}, func(b *pin.Box[[]byte]) string {
		return string(*b.Ref())
	})

	if got != "scoped" {
		t.Fatalf("got %q, want %q", got, "scoped")
	}
	if !cleaned {
		t.Fatal("builder deferred call did not run before With returned")
	}
}

func TestWithClosesOnPanic(t *testing.T) {
	cleaned := false

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		pin.With(func(c pin.Capturer[int]) {
			defer func() { cleaned = true }()
			c.Capture(1)
		}, func(*pin.Box[int]) int {
			panic("use failed")
		})
	}()

	if !cleaned {
		t.Fatal("box not released on panic in use")
	}
}

func TestWithRef(t *testing.T) {
	got := pin.WithRef(func(c pin.Capturer[[]byte]) {
		data := []byte{240, 159, 146, 150}
		c.Capture(data[:])
	}, func(view *[]byte) string {
		return string(*view)
	})

	if got != "💖" {
		t.Fatalf("got %q, want %q", got, "💖")
	}
}
