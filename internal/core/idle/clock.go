package idle

import "time"

// Clock abstracts wall time and timer scheduling so monitor tests can
// run on a manual clock.
type Clock interface {
	Now() time.Time
	// AfterFunc schedules f to run after d and returns a handle that
	// can cancel it.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop cancels the timer; it reports whether the callback had not
	// yet fired.
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns a Clock backed by the system clock.
func RealClock() Clock { return realClock{} }
