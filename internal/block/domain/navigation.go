package domain

import "fmt"

// NavigationAction is the policy applied when the user dismisses a blocked
// page. Temporal-scope verdicts return to the previous history entry;
// platform-category verdicts redirect to the platform home surface.
type NavigationAction uint8

const (
	// NavigateBack returns to the previous history entry.
	NavigateBack NavigationAction = iota
	// NavigateHome requests navigation to the platform home surface.
	NavigateHome
)

// String returns a stable string representation of the action.
func (a NavigationAction) String() string {
	switch a {
	case NavigateBack:
		return "back"
	case NavigateHome:
		return "home"
	default:
		return fmt.Sprintf("NavigationAction(%d)", a)
	}
}

// ActionFor selects the dismissal action for a block type.
func ActionFor(b BlockType) NavigationAction {
	switch b {
	case BlockSchedule, BlockPermanent, BlockQuick:
		return NavigateBack
	default:
		return NavigateHome
	}
}
