package domain

// FeatureGates are the platform-wide category toggles evaluated independently
// of the rule scopes.
type FeatureGates struct {
	BlockShorts bool
	BlockPosts  bool
}

// RuleSnapshot is the immutable evaluation state handed to the matcher:
// rules grouped by scope in store order, the schedule index, the current
// quick-block session and the feature gates. Snapshots are replaced
// wholesale by an explicit refresh; the matcher never mutates one.
type RuleSnapshot struct {
	Quick     []Rule
	Permanent []Rule
	Scheduled []Rule
	Schedules map[string]Schedule
	Session   QuickBlockSession
	Gates     FeatureGates
	Version   uint64
}

// ScheduleFor resolves a rule's schedule reference. The second return is
// false when the reference is missing, which gates the rule off entirely.
func (s RuleSnapshot) ScheduleFor(r Rule) (Schedule, bool) {
	sched, ok := s.Schedules[r.ScheduleRef]
	return sched, ok
}

// Empty reports whether the snapshot holds no rules at all.
func (s RuleSnapshot) Empty() bool {
	return len(s.Quick) == 0 && len(s.Permanent) == 0 && len(s.Scheduled) == 0
}
