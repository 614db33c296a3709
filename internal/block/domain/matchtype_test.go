package domain

import "testing"

func TestParseMatchType(t *testing.T) {
	cases := []struct {
		in   string
		want MatchType
	}{
		{"domain", MatchDomain},
		{"url_keyword", MatchURLKeyword},
		{"content_keyword", MatchContentKeyword},
		// scope-prefixed variants are semantically identical to their base type
		{"permanent_domain", MatchDomain},
		{"quick_domain", MatchDomain},
		{"quick_url_keyword", MatchURLKeyword},
		{"schedule_content_keyword", MatchContentKeyword},
		{"DOMAIN", MatchDomain},
		{"", MatchNone},
		{"bogus", MatchNone},
	}
	for _, tc := range cases {
		if got := ParseMatchType(tc.in); got != tc.want {
			t.Errorf("ParseMatchType(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMatchType_String(t *testing.T) {
	if MatchNone.String() != "" {
		t.Errorf("MatchNone must render as empty string")
	}
	if MatchDomain.String() != "domain" {
		t.Errorf("unexpected: %q", MatchDomain.String())
	}
}

func TestScope_RoundTrip(t *testing.T) {
	for _, s := range []Scope{ScopePermanent, ScopeQuick, ScopeSchedule} {
		got, err := ParseScope(s.String())
		if err != nil || got != s {
			t.Errorf("ParseScope(%q) = %v, %v; want %v", s.String(), got, err, s)
		}
	}
	if _, err := ParseScope("sometimes"); err == nil {
		t.Errorf("expected error for unknown scope")
	}
}
