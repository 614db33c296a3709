package settings

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/haukened/tubegate/internal/block/domain"
)

// Storage DTOs. Kept separate from the domain types so the persisted shape
// stays stable if the domain evolves.

type ruleDTO struct {
	ID          string `json:"id"`
	Scope       string `json:"scope"`
	MatchType   string `json:"match_type"`
	Value       string `json:"value"`
	ScheduleRef string `json:"schedule_ref,omitempty"`
	Channel     string `json:"channel,omitempty"`
}

type scheduleDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Days  uint8  `json:"days"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type sessionDTO struct {
	EndsAtUnixMs int64 `json:"ends_at_unix_ms"`
}

type flagsDTO struct {
	BlockShorts bool            `json:"block_shorts"`
	BlockPosts  bool            `json:"block_posts"`
	Cosmetic    map[string]bool `json:"cosmetic,omitempty"`
}

func encodeRules(rules []domain.Rule) ([]byte, error) {
	dtos := make([]ruleDTO, 0, len(rules))
	for _, r := range rules {
		dtos = append(dtos, ruleDTO{
			ID:          r.ID,
			Scope:       r.Scope.String(),
			MatchType:   r.MatchType.String(),
			Value:       r.Value,
			ScheduleRef: r.ScheduleRef,
			Channel:     r.Channel,
		})
	}
	return json.Marshal(dtos)
}

func decodeRules(b []byte) ([]domain.Rule, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var dtos []ruleDTO
	if err := json.Unmarshal(b, &dtos); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	rules := make([]domain.Rule, 0, len(dtos))
	for _, d := range dtos {
		scope, err := domain.ParseScope(d.Scope)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", d.ID, err)
		}
		mt := domain.ParseMatchType(d.MatchType)
		if !mt.IsValid() {
			return nil, fmt.Errorf("rule %q: unsupported match type %q", d.ID, d.MatchType)
		}
		rules = append(rules, domain.Rule{
			ID:          d.ID,
			Scope:       scope,
			MatchType:   mt,
			Value:       d.Value,
			ScheduleRef: d.ScheduleRef,
			Channel:     d.Channel,
		})
	}
	return rules, nil
}

func encodeSchedules(schedules []domain.Schedule) ([]byte, error) {
	dtos := make([]scheduleDTO, 0, len(schedules))
	for _, s := range schedules {
		dtos = append(dtos, scheduleDTO{
			ID:    s.ID,
			Name:  s.Name,
			Days:  s.Days,
			Start: int(s.Start),
			End:   int(s.End),
		})
	}
	return json.Marshal(dtos)
}

func decodeSchedules(b []byte) ([]domain.Schedule, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var dtos []scheduleDTO
	if err := json.Unmarshal(b, &dtos); err != nil {
		return nil, fmt.Errorf("decode schedules: %w", err)
	}
	schedules := make([]domain.Schedule, 0, len(dtos))
	for _, d := range dtos {
		schedules = append(schedules, domain.Schedule{
			ID:    d.ID,
			Name:  d.Name,
			Days:  d.Days,
			Start: domain.TimeOfDay(d.Start),
			End:   domain.TimeOfDay(d.End),
		})
	}
	return schedules, nil
}

func encodeSession(s domain.QuickBlockSession) ([]byte, error) {
	var ms int64
	if !s.EndsAt.IsZero() {
		ms = s.EndsAt.UnixMilli()
	}
	return json.Marshal(sessionDTO{EndsAtUnixMs: ms})
}

func decodeSession(b []byte) (domain.QuickBlockSession, error) {
	if len(b) == 0 {
		return domain.QuickBlockSession{}, nil
	}
	var d sessionDTO
	if err := json.Unmarshal(b, &d); err != nil {
		return domain.QuickBlockSession{}, fmt.Errorf("decode session: %w", err)
	}
	if d.EndsAtUnixMs == 0 {
		return domain.QuickBlockSession{}, nil
	}
	return domain.QuickBlockSession{EndsAt: time.UnixMilli(d.EndsAtUnixMs)}, nil
}

func encodeFlags(f Flags) ([]byte, error) {
	return json.Marshal(flagsDTO{
		BlockShorts: f.BlockShorts,
		BlockPosts:  f.BlockPosts,
		Cosmetic:    f.Cosmetic,
	})
}

func decodeFlags(b []byte) (Flags, error) {
	if len(b) == 0 {
		return Flags{}, nil
	}
	var d flagsDTO
	if err := json.Unmarshal(b, &d); err != nil {
		return Flags{}, fmt.Errorf("decode flags: %w", err)
	}
	return Flags{BlockShorts: d.BlockShorts, BlockPosts: d.BlockPosts, Cosmetic: d.Cosmetic}, nil
}
