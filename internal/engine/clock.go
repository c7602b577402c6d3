package engine

import "time"

// Clock abstracts the current time so tests can pin it.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the server's wall clock.
func SystemClock() Clock { return realClock{} }
