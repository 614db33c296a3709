// Package rules holds the in-memory rule snapshot the matcher evaluates
// against. The snapshot is replaced wholesale by an explicit refresh from
// the settings store; evaluation never touches persistence.
//
// The store also keeps a cache → bloom negative fast path over the
// structural part of domain-rule matching. Structural matching is
// time-independent, so memoized answers stay correct until the next
// snapshot replace, which purges the cache and rebuilds the filter.
package rules

import (
	"sync"

	"github.com/haukened/tubegate/internal/block/common/urlx"
	"github.com/haukened/tubegate/internal/block/domain"
)

// Store is the snapshot holder. All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	snap    domain.RuleSnapshot
	bloom   BloomFilter
	factory BloomFactory
	cache   HostCache
	fpRate  float64
}

// NewStore constructs an empty Store. fpRate is the target false-positive
// rate for the domain-rule prefilter when rebuilding.
func NewStore(factory BloomFactory, cache HostCache, fpRate float64) *Store {
	return &Store{factory: factory, cache: cache, fpRate: fpRate}
}

// Replace performs an atomic snapshot swap: rules are regrouped by scope in
// store order, the schedule index and bloom filter are rebuilt, and the host
// cache is purged.
func (s *Store) Replace(ruleList []domain.Rule, schedules []domain.Schedule, session domain.QuickBlockSession, gates domain.FeatureGates, version uint64) {
	snap := domain.RuleSnapshot{
		Schedules: make(map[string]domain.Schedule, len(schedules)),
		Session:   session,
		Gates:     gates,
		Version:   version,
	}
	var domainRules uint64
	for _, r := range ruleList {
		switch r.Scope {
		case domain.ScopeQuick:
			snap.Quick = append(snap.Quick, r)
		case domain.ScopePermanent:
			snap.Permanent = append(snap.Permanent, r)
		case domain.ScopeSchedule:
			snap.Scheduled = append(snap.Scheduled, r)
		}
		if r.MatchType == domain.MatchDomain {
			domainRules++
		}
	}
	for _, sc := range schedules {
		snap.Schedules[sc.ID] = sc
	}

	var bf BloomFilter
	if domainRules > 0 {
		bf = s.factory.New(domainRules, s.fpRate)
		for _, r := range ruleList {
			if r.MatchType == domain.MatchDomain {
				bf.Add([]byte(urlx.CanonicalHost(r.Value)))
			}
		}
	}

	s.mu.Lock()
	s.snap = snap
	s.bloom = bf
	s.cache.Purge()
	s.mu.Unlock()
}

// Snapshot returns the current evaluation state.
func (s *Store) Snapshot() domain.RuleSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// MaybeBlockedHost reports whether any domain rule could structurally match
// the host. A false answer is definitive and lets the matcher skip domain
// comparisons for the event; a true answer still requires the authoritative
// in-order scan.
func (s *Store) MaybeBlockedHost(host string) bool {
	cn := urlx.CanonicalHost(host)

	s.mu.RLock()
	bf := s.bloom
	s.mu.RUnlock()
	if bf == nil {
		// no domain rules in the snapshot
		return false
	}

	if maybe, ok := s.cache.Get(cn); ok {
		return maybe
	}
	// every parent anchor is consulted: the authoritative matcher accepts
	// rule values at or above the registrable boundary, so the fast path
	// must too
	maybe := false
	for _, anchor := range urlx.ParentAnchors(cn) {
		if bf.MightContain([]byte(anchor)) {
			maybe = true
			break
		}
	}
	s.cache.Put(cn, maybe)
	return maybe
}

// Stats exposes store-level counters for diagnostics.
type Stats struct {
	QuickRules     int
	PermanentRules int
	ScheduledRules int
	Schedules      int
	Version        uint64
	CacheHits      uint64
	CacheMisses    uint64
	CacheEvictions uint64
}

// Stats returns a point-in-time view of the store and host cache.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	hits, misses, evictions := s.cache.Stats()
	return Stats{
		QuickRules:     len(snap.Quick),
		PermanentRules: len(snap.Permanent),
		ScheduledRules: len(snap.Scheduled),
		Schedules:      len(snap.Schedules),
		Version:        snap.Version,
		CacheHits:      hits,
		CacheMisses:    misses,
		CacheEvictions: evictions,
	}
}
