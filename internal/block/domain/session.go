package domain

import "time"

// QuickBlockSession is a user-initiated, time-boxed blocking override with an
// absolute end instant. At most one session is effective at a time. A session
// whose end has passed is inert; the evaluator never mutates it.
type QuickBlockSession struct {
	EndsAt time.Time
}

// NewQuickBlockSession starts a session lasting d from now.
func NewQuickBlockSession(now time.Time, d time.Duration) QuickBlockSession {
	return QuickBlockSession{EndsAt: now.Add(d)}
}

// ActiveAt reports whether the session is still running at the given instant.
// A zero session is never active.
func (q QuickBlockSession) ActiveAt(now time.Time) bool {
	return !q.EndsAt.IsZero() && now.Before(q.EndsAt)
}

// Remaining returns the countdown to the session end.
func (q QuickBlockSession) Remaining(now time.Time) Countdown {
	return Remaining(q.EndsAt, now)
}
