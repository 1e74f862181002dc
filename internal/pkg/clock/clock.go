package clock

import "time"

// Clock abstracts wall-clock reads so expiry comparisons can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// Real reads the system clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fixed always returns the same instant. Intended for tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
