package transport

import (
	"context"
	"time"

	"github.com/haukened/tubegate/internal/block/domain"
)

// Evaluator decides whether a navigation event is blocked. A nil decision
// means the navigation is allowed.
type Evaluator interface {
	Evaluate(event domain.NavigationEvent, now time.Time) *domain.BlockDecision
}

// Refresher reloads the active rule snapshot from persisted settings.
type Refresher interface {
	Refresh(ctx context.Context) error
}
