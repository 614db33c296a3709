// Package matcher implements the blocking rule evaluation engine. Evaluation
// is a pure, synchronous, in-memory computation over an injected snapshot;
// it performs no I/O and holds no mutable state of its own.
package matcher

import (
	"strings"
	"time"

	"github.com/haukened/tubegate/internal/block/common/log"
	"github.com/haukened/tubegate/internal/block/common/urlx"
	"github.com/haukened/tubegate/internal/block/domain"
)

type Matcher struct {
	source RuleSource
	logger log.Logger
}

type Options struct {
	Source RuleSource
	Logger log.Logger
}

func New(opts Options) *Matcher {
	return &Matcher{source: opts.Source, logger: opts.Logger}
}

// Evaluate selects the single verdict (if any) blocking the event.
//
// Order of consideration:
//  1. Platform feature gates (shorts, posts) - independent of rule scopes.
//  2. Quick rules, only while the quick-block session is active.
//  3. Permanent rules, unconditional.
//  4. Schedule rules, each gated on its referenced window being active.
//
// Within a scope, rules are tested in store order and the first structural
// match wins. An empty snapshot fails open: nothing is blocked.
func (m *Matcher) Evaluate(event domain.NavigationEvent, now time.Time) *domain.BlockDecision {
	snap := m.source.Snapshot()

	if snap.Gates.BlockShorts && urlx.IsShortsURL(event.URL) {
		return m.verdict(domain.NewShortsDecision(event.URL))
	}
	if snap.Gates.BlockPosts && urlx.IsPostsURL(event.URL) {
		return m.verdict(domain.NewPostsDecision(event.URL))
	}

	if snap.Empty() {
		return nil
	}

	maybeHost := m.source.MaybeBlockedHost(event.Host)

	if snap.Session.ActiveAt(now) {
		if r, ok := firstMatch(snap.Quick, event, maybeHost); ok {
			return m.verdict(domain.NewQuickDecision(event.URL, r.MatchType, r.Value, snap.Session.EndsAt))
		}
	}

	if r, ok := firstMatch(snap.Permanent, event, maybeHost); ok {
		if r.Channel != "" {
			return m.verdict(domain.NewChannelDecision(r.Channel, event.URL, r.MatchType, r.Value))
		}
		return m.verdict(domain.NewPermanentDecision(event.URL, r.MatchType, r.Value))
	}

	for _, r := range snap.Scheduled {
		sched, ok := snap.ScheduleFor(r)
		if !ok {
			// dangling reference gates the rule off entirely
			continue
		}
		if !sched.ActiveAt(now) {
			continue
		}
		if matches(r, event, maybeHost) {
			return m.verdict(domain.NewScheduleDecision(event.URL, r.MatchType, r.Value, sched))
		}
	}

	return nil
}

// verdict logs and boxes a decision.
func (m *Matcher) verdict(d domain.BlockDecision) *domain.BlockDecision {
	m.logger.Debug(map[string]any{
		"block_type":    d.Type.String(),
		"blocked_url":   d.BlockedURL,
		"match_type":    d.MatchType.String(),
		"matched_value": d.MatchedValue,
	}, "Navigation blocked")
	return &d
}

// firstMatch returns the first rule in store order that structurally matches
// the event.
func firstMatch(list []domain.Rule, event domain.NavigationEvent, maybeHost bool) (domain.Rule, bool) {
	for _, r := range list {
		if matches(r, event, maybeHost) {
			return r, true
		}
	}
	return domain.Rule{}, false
}

// matches applies one rule's match-type semantics to the event.
func matches(r domain.Rule, event domain.NavigationEvent, maybeHost bool) bool {
	switch r.MatchType {
	case domain.MatchDomain:
		return maybeHost && urlx.HostMatchesDomain(event.Host, r.Value)
	case domain.MatchURLKeyword:
		return containsFold(event.URL, r.Value)
	case domain.MatchContentKeyword:
		return event.HasContent() && containsFold(event.ContentText, r.Value)
	default:
		return false
	}
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
