// Package blockpage implements the blocked-page controller: it renders the
// reason for a decoded verdict, runs the countdown for quick blocks, and
// applies the navigation policy on dismissal. All failures are absorbed into
// default displays; nothing here surfaces an error to the user.
package blockpage

import (
	"context"
	"sync"
	"time"

	"github.com/haukened/tubegate/internal/block/common/clock"
	"github.com/haukened/tubegate/internal/block/common/log"
	"github.com/haukened/tubegate/internal/block/domain"
)

// State is the controller lifecycle per page instance:
// Init -> Rendered -> [Counting] -> Expired. Counting occurs only for quick
// verdicts; Expired is terminal.
type State uint8

const (
	StateInit State = iota
	StateRendered
	StateCounting
	StateExpired
)

// Controller owns one decoded verdict for the lifetime of a page instance.
// The verdict is immutable; the controller only derives display text and a
// local countdown from it.
type Controller struct {
	decision domain.BlockDecision
	clk      clock.Clock
	logger   log.Logger
	nav      Navigator
	display  Display
	tick     time.Duration

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

type Options struct {
	Decision  domain.BlockDecision
	Clock     clock.Clock
	Logger    log.Logger
	Navigator Navigator
	Display   Display

	// TickInterval overrides the 1-second countdown period; tests shorten it.
	TickInterval time.Duration
}

func NewController(opts Options) *Controller {
	tick := opts.TickInterval
	if tick <= 0 {
		tick = time.Second
	}
	return &Controller{
		decision: opts.Decision,
		clk:      opts.Clock,
		logger:   opts.Logger,
		nav:      opts.Navigator,
		display:  opts.Display,
		tick:     tick,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Decision returns the verdict this controller renders.
func (c *Controller) Decision() domain.BlockDecision { return c.decision }

// Render composes and displays the block message. One-shot: repeated calls
// return the composed message without re-transitioning.
func (c *Controller) Render() string {
	msg := ComposeMessage(c.decision)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateInit {
		return msg
	}
	c.display.SetMessage(msg)
	if c.decision.Type == domain.BlockQuick {
		c.display.SetCountdown(domain.Remaining(c.decision.QuickEndsAt, c.clk.Now()).Display())
	}
	c.state = StateRendered
	return msg
}

// StartCountdown begins the repeating countdown task for quick verdicts. It
// is a no-op for other block types or when the controller has not rendered.
// A verdict whose end instant already passed (including a malformed encoded
// end time, which decodes to zero) transitions straight to Expired.
func (c *Controller) StartCountdown(ctx context.Context) {
	c.mu.Lock()
	if c.state != StateRendered || c.decision.Type != domain.BlockQuick {
		c.mu.Unlock()
		return
	}
	if domain.Remaining(c.decision.QuickEndsAt, c.clk.Now()).Expired {
		c.expireLocked()
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = StateCounting
	c.mu.Unlock()

	go c.countdownLoop(ctx)
}

// Stop cancels the countdown task. Called on page-instance teardown; safe to
// call in any state.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Dismiss applies the navigation policy for the verdict: history-back for
// temporal-scope blocks, the home-redirect message for platform categories.
func (c *Controller) Dismiss(ctx context.Context) error {
	action := domain.ActionFor(c.decision.Type)
	c.logger.Debug(map[string]any{
		"block_type": c.decision.Type.String(),
		"action":     action.String(),
	}, "Blocked page dismissed")

	if action == domain.NavigateBack {
		return c.nav.Back(ctx)
	}
	return c.nav.Home(ctx)
}

// countdownLoop recomputes remaining time from the fixed end instant once
// per tick until expiry or cancellation.
func (c *Controller) countdownLoop(ctx context.Context) {
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.onTick() {
				return
			}
		}
	}
}

// onTick updates the display; returns true once the terminal Expired state
// is reached. Ticks after expiry perform no work.
func (c *Controller) onTick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateCounting {
		return true
	}
	cd := domain.Remaining(c.decision.QuickEndsAt, c.clk.Now())
	c.display.SetCountdown(cd.Display())
	if cd.Expired {
		c.expireLocked()
		return true
	}
	return false
}

// expireLocked moves to the terminal state and stops further work.
// Caller holds c.mu.
func (c *Controller) expireLocked() {
	c.state = StateExpired
	c.display.SetCountdown(domain.Countdown{Expired: true}.Display())
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
