package clock

import "time"

// Clock abstracts wall-clock reads so "now" is injected rather than
// scattered through the attendance logic. Tests substitute a fake.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by time.Now.
func System() Clock { return systemClock{} }

// Fake is a manually advanced Clock for deterministic tests.
type Fake struct {
	now time.Time
}

func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

func (f *Fake) Now() time.Time { return f.now }

// Set moves the fake clock to t.
func (f *Fake) Set(t time.Time) { f.now = t }

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) { f.now = f.now.Add(d) }
