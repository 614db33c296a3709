package domain

import (
	"fmt"
	"strings"
)

// Rule is a single blocking predicate bound to one temporal scope.
//
// Notes:
// - Value is expected to be canonical for MatchDomain (lowercase, no scheme).
// - ScheduleRef is set iff Scope == ScopeSchedule.
// - Channel optionally names the channel a rule was created from; a matched
//   permanent rule carrying a channel name yields a channel verdict.
type Rule struct {
	ID          string
	Scope       Scope
	MatchType   MatchType
	Value       string
	ScheduleRef string
	Channel     string
}

// NewRule constructs a Rule and validates its fields.
func NewRule(id string, scope Scope, matchType MatchType, value string) (Rule, error) {
	r := Rule{
		ID:        strings.TrimSpace(id),
		Scope:     scope,
		MatchType: matchType,
		Value:     strings.TrimSpace(value),
	}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// NewScheduleRule constructs a Rule bound to a schedule window.
func NewScheduleRule(id string, matchType MatchType, value, scheduleRef string) (Rule, error) {
	r := Rule{
		ID:          strings.TrimSpace(id),
		Scope:       ScopeSchedule,
		MatchType:   matchType,
		Value:       strings.TrimSpace(value),
		ScheduleRef: strings.TrimSpace(scheduleRef),
	}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// Validate checks the Rule for required fields and supported values.
func (r Rule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("rule id must not be empty")
	}
	if r.Value == "" {
		return fmt.Errorf("rule value must not be empty")
	}
	if !r.Scope.IsValid() {
		return fmt.Errorf("unsupported Scope: %d", r.Scope)
	}
	if !r.MatchType.IsValid() {
		return fmt.Errorf("unsupported MatchType: %d", r.MatchType)
	}
	if r.Scope == ScopeSchedule && r.ScheduleRef == "" {
		return fmt.Errorf("schedule-scoped rule must reference a schedule")
	}
	if r.Scope != ScopeSchedule && r.ScheduleRef != "" {
		return fmt.Errorf("scheduleRef is only valid on schedule-scoped rules")
	}
	return nil
}
