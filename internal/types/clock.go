package types

import "time"

// Clock supplies the current time to every component with temporal logic so
// tests can pin "now" deterministically.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// RealClock returns a Clock backed by the system time in UTC.
func RealClock() Clock {
	return realClock{}
}
