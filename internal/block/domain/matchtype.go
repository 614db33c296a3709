package domain

import (
	"fmt"
	"strings"
)

// MatchType defines how a rule's value is compared against a navigation event.
//
// domain          - host equality or subdomain suffix on a label boundary
// url_keyword     - case-insensitive substring of the full URL
// content_keyword - case-insensitive substring of extracted page text
type MatchType uint8

const (
	// MatchNone is the zero value; it never fires and renders a generic reason.
	MatchNone MatchType = iota
	// MatchDomain matches the event host against the rule value.
	MatchDomain
	// MatchURLKeyword matches the rule value anywhere in the event URL.
	MatchURLKeyword
	// MatchContentKeyword matches the rule value in extracted page text.
	MatchContentKeyword
)

// String returns the wire representation of the match type.
// MatchNone renders as the empty string, matching the contract default.
func (m MatchType) String() string {
	switch m {
	case MatchNone:
		return ""
	case MatchDomain:
		return "domain"
	case MatchURLKeyword:
		return "url_keyword"
	case MatchContentKeyword:
		return "content_keyword"
	default:
		return fmt.Sprintf("MatchType(%d)", m)
	}
}

// scopePrefixes are legacy wire variants that carried the producing scope in
// the match type itself. They are semantically identical to their base type.
var scopePrefixes = []string{"permanent_", "quick_", "schedule_"}

// ParseMatchType converts a wire string into a MatchType. Scope-prefixed
// variants (e.g. "quick_domain") normalize to their base type. Unknown or
// empty strings parse to MatchNone; this function never fails.
func ParseMatchType(s string) MatchType {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, p := range scopePrefixes {
		v = strings.TrimPrefix(v, p)
	}
	switch v {
	case "domain":
		return MatchDomain
	case "url_keyword":
		return MatchURLKeyword
	case "content_keyword":
		return MatchContentKeyword
	default:
		return MatchNone
	}
}

// IsValid reports whether the match type is usable on a rule.
// MatchNone is valid only on decoded decisions, never on stored rules.
func (m MatchType) IsValid() bool {
	return m == MatchDomain || m == MatchURLKeyword || m == MatchContentKeyword
}
