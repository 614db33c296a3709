package domain

import (
	"fmt"
	"time"
)

// Countdown is the whole-second decomposition of the time left until an
// absolute end instant. The decomposition is exact; Display is a lossy
// projection that shows only the two largest nonzero units.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	Expired bool
}

// Remaining computes the countdown from now to endsAt in whole seconds
// (floor). A zero or past end instant yields an expired countdown.
func Remaining(endsAt time.Time, now time.Time) Countdown {
	if endsAt.IsZero() {
		return Countdown{Expired: true}
	}
	secs := int64(endsAt.Sub(now) / time.Second)
	if secs <= 0 {
		return Countdown{Expired: true}
	}
	return Countdown{
		Days:    int(secs / 86400),
		Hours:   int(secs/3600) % 24,
		Minutes: int(secs/60) % 60,
		Seconds: int(secs % 60),
	}
}

// Display renders the two largest nonzero units, in priority order
// days, hours, minutes, seconds. Expired countdowns render as "expired".
func (c Countdown) Display() string {
	switch {
	case c.Expired:
		return "expired"
	case c.Days > 0:
		return fmt.Sprintf("%dd %dh", c.Days, c.Hours)
	case c.Hours > 0:
		return fmt.Sprintf("%dh %dm", c.Hours, c.Minutes)
	case c.Minutes > 0:
		return fmt.Sprintf("%dm %ds", c.Minutes, c.Seconds)
	default:
		return fmt.Sprintf("%ds", c.Seconds)
	}
}
