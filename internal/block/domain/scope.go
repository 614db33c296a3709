package domain

import (
	"fmt"
	"strings"
)

// Scope defines when a rule is eligible for evaluation.
//
// permanent - always checked
// quick     - checked only while a quick-block session is active
// schedule  - checked only while the referenced schedule window is active
type Scope uint8

const (
	// ScopePermanent rules are checked unconditionally.
	ScopePermanent Scope = iota
	// ScopeQuick rules are gated on an active quick-block session.
	ScopeQuick
	// ScopeSchedule rules are gated on their referenced schedule window.
	ScopeSchedule
)

// String returns a stable string representation of the scope.
func (s Scope) String() string {
	switch s {
	case ScopePermanent:
		return "permanent"
	case ScopeQuick:
		return "quick"
	case ScopeSchedule:
		return "schedule"
	default:
		return fmt.Sprintf("Scope(%d)", s)
	}
}

// ParseScope converts a string into a Scope.
// Accepts: "permanent", "quick", "schedule" (case-insensitive).
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "permanent":
		return ScopePermanent, nil
	case "quick":
		return ScopeQuick, nil
	case "schedule":
		return ScopeSchedule, nil
	default:
		return 0, fmt.Errorf("unsupported Scope: %q", s)
	}
}

// IsValid reports whether the scope is one of the defined values.
func (s Scope) IsValid() bool {
	return s == ScopePermanent || s == ScopeQuick || s == ScopeSchedule
}
