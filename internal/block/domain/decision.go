package domain

import "time"

// BlockDecision is the immutable outcome of one rule evaluation. It carries
// everything the presentation surface needs to render a reason; the surface
// never queries back into rule or schedule state.
type BlockDecision struct {
	Type         BlockType
	ChannelName  string
	BlockedURL   string
	MatchType    MatchType
	MatchedValue string
	ScheduleName string
	TimeWindow   string
	QuickEndsAt  time.Time
}

// NewChannelDecision builds a verdict for a blocked channel.
func NewChannelDecision(channel, url string, mt MatchType, value string) BlockDecision {
	return BlockDecision{
		Type:         BlockChannel,
		ChannelName:  channel,
		BlockedURL:   url,
		MatchType:    mt,
		MatchedValue: value,
	}
}

// NewShortsDecision builds a verdict from the short-form clip feature gate.
func NewShortsDecision(url string) BlockDecision {
	return BlockDecision{Type: BlockShorts, BlockedURL: url}
}

// NewPostsDecision builds a verdict from the community-post feature gate.
func NewPostsDecision(url string) BlockDecision {
	return BlockDecision{Type: BlockPosts, BlockedURL: url}
}

// NewPermanentDecision builds a verdict from an always-on rule.
func NewPermanentDecision(url string, mt MatchType, value string) BlockDecision {
	return BlockDecision{
		Type:         BlockPermanent,
		BlockedURL:   url,
		MatchType:    mt,
		MatchedValue: value,
	}
}

// NewScheduleDecision builds a verdict from a rule inside an active schedule
// window, attaching the schedule's name and rendered window.
func NewScheduleDecision(url string, mt MatchType, value string, schedule Schedule) BlockDecision {
	return BlockDecision{
		Type:         BlockSchedule,
		BlockedURL:   url,
		MatchType:    mt,
		MatchedValue: value,
		ScheduleName: schedule.Name,
		TimeWindow:   schedule.Window(),
	}
}

// NewQuickDecision builds a verdict from a rule during an active quick-block
// session, attaching the session's absolute end instant.
func NewQuickDecision(url string, mt MatchType, value string, endsAt time.Time) BlockDecision {
	return BlockDecision{
		Type:         BlockQuick,
		BlockedURL:   url,
		MatchType:    mt,
		MatchedValue: value,
		QuickEndsAt:  endsAt,
	}
}
