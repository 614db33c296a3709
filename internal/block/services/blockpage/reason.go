package blockpage

import (
	"fmt"

	"github.com/haukened/tubegate/internal/block/domain"
)

// genericReason is shown when the match type is unknown or absent.
const genericReason = "This page is blocked."

// ReasonFor returns the reason line for a match type. Unknown match types
// render the generic reason rather than an error.
func ReasonFor(mt domain.MatchType) string {
	switch mt {
	case domain.MatchDomain:
		return "This site is blocked by a domain rule."
	case domain.MatchURLKeyword:
		return "This page's address contains a blocked keyword."
	case domain.MatchContentKeyword:
		return "This page's content contains a blocked keyword."
	default:
		return genericReason
	}
}

// ComposeMessage builds the final message for a verdict, selecting exactly
// one branch per block type.
func ComposeMessage(d domain.BlockDecision) string {
	switch d.Type {
	case domain.BlockShorts:
		return "Shorts are blocked."
	case domain.BlockPosts:
		return "Community posts are blocked."
	case domain.BlockSchedule:
		if d.TimeWindow != "" {
			return fmt.Sprintf("%s Active schedule: %s (%s).", ReasonFor(d.MatchType), d.ScheduleName, d.TimeWindow)
		}
		return fmt.Sprintf("%s Active schedule: %s.", ReasonFor(d.MatchType), d.ScheduleName)
	case domain.BlockPermanent:
		return fmt.Sprintf("%s This block is always on.", ReasonFor(d.MatchType))
	case domain.BlockQuick:
		return fmt.Sprintf("%s A quick block is active.", ReasonFor(d.MatchType))
	default:
		// channel branch doubles as the fail-open default
		return fmt.Sprintf("%s is blocked.", d.ChannelName)
	}
}
