// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pin

import (
	"runtime"
	"testing"
	"time"
)

// White-box tests for the frame driving machinery.

func TestFrameOutcomeReturned(t *testing.T) {
	f := newFrame[int]()
	go f.run(func(Capturer[int]) {})

	o := f.drive()
	if o.kind != outcomeReturned {
		t.Fatalf("kind = %d, want outcomeReturned", o.kind)
	}
	f.shutdown()
}

func TestFrameOutcomePanicked(t *testing.T) {
	f := newFrame[int]()
	go f.run(func(Capturer[int]) { panic("boom") })

	o := f.drive()
	if o.kind != outcomePanicked {
		t.Fatalf("kind = %d, want outcomePanicked", o.kind)
	}
	if o.panicValue != "boom" {
		t.Fatalf("panicValue = %v, want boom", o.panicValue)
	}
	f.shutdown()
}

func TestFrameOutcomeCaptured(t *testing.T) {
	f := newFrame[int]()
	go f.run(func(c Capturer[int]) { c.Capture(3) })

	o := f.drive()
	if o.kind != outcomeCaptured {
		t.Fatalf("kind = %d, want outcomeCaptured", o.kind)
	}
	if got := *f.payload.Load(); got != 3 {
		t.Fatalf("payload = %d, want 3", got)
	}
	f.shutdown()
}

func TestFrameReportOnce(t *testing.T) {
	f := newFrame[int]()
	if !f.report(outcome{kind: outcomeReturned}) {
		t.Fatal("first report rejected")
	}
	if f.report(outcome{kind: outcomeReturned}) {
		t.Fatal("second report accepted")
	}
}

func TestFrameShutdownIdempotent(t *testing.T) {
	f := newFrame[int]()
	go f.run(func(c Capturer[int]) { c.Capture(1) })
	f.drive()

	f.shutdown()
	f.shutdown()
}

// settledGoroutines samples the goroutine count until it stops moving,
// so that frame goroutines still exiting from earlier tests do not skew
// the baseline.
func settledGoroutines() int {
	n := runtime.NumGoroutine()
	for range 20 {
		time.Sleep(5 * time.Millisecond)
		m := runtime.NumGoroutine()
		if m == n {
			return n
		}
		n = m
	}
	return n
}

// waitGoroutines polls until the goroutine count drops back to at most
// base, forcing collection along the way.
func waitGoroutines(t *testing.T, base int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= base {
			return
		}
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("goroutines did not settle: %d > %d", runtime.NumGoroutine(), base)
}

func TestCloseReleasesFrameGoroutine(t *testing.T) {
	base := settledGoroutines()

	b := New(func(c Capturer[int]) { c.Capture(1) })
	if runtime.NumGoroutine() <= base {
		t.Fatal("expected a parked frame goroutine")
	}
	b.Close()

	waitGoroutines(t, base)
}

func TestDroppedBoxReleasedByCleanup(t *testing.T) {
	base := settledGoroutines()

	func() {
		b := New(func(c Capturer[int]) { c.Capture(1) })
		_ = *b.Ref()
	}()

	// The cleanup hook fires once the Box is collected.
	waitGoroutines(t, base)
}
