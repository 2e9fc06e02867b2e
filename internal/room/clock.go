package room

import "time"

// Clock abstracts arming of deferred callbacks so the round countdown can
// be driven by a fake in tests instead of wall time.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable handle for a single armed callback.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// RealClock returns a Clock backed by time.AfterFunc.
func RealClock() Clock { return realClock{} }
