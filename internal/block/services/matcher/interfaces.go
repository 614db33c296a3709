package matcher

import "github.com/haukened/tubegate/internal/block/domain"

// RuleSource supplies the immutable evaluation state. The snapshot is
// refreshed externally; the matcher only reads it.
type RuleSource interface {
	// Snapshot returns the current rules, schedules, session and gates.
	Snapshot() domain.RuleSnapshot

	// MaybeBlockedHost reports whether any domain rule could structurally
	// match the host. False is definitive and skips domain comparisons.
	MaybeBlockedHost(host string) bool
}
