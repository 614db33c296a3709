// Package urlx holds host and platform-path helpers shared by the matcher
// and the rule index.
package urlx

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// CanonicalHost returns a host in canonical form: lowercased, trimmed, any
// port and trailing dots removed.
func CanonicalHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	for strings.HasSuffix(host, ".") {
		host = strings.TrimSuffix(host, ".")
	}
	return host
}

// ApexDomain returns the registrable domain (eTLD+1) for a host, falling back
// to the canonical host when the public suffix list cannot resolve it.
func ApexDomain(host string) string {
	host = CanonicalHost(host)
	apex, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return apex
}

// HostMatchesDomain reports whether host equals value or is a subdomain of
// it. The suffix test anchors on a label boundary, so "notexample.com" does
// not match a "example.com" rule.
func HostMatchesDomain(host, value string) bool {
	host = CanonicalHost(host)
	value = CanonicalHost(value)
	if host == "" || value == "" {
		return false
	}
	return host == value || strings.HasSuffix(host, "."+value)
}

// ParentAnchors returns host followed by each parent suffix at label
// boundaries, most-specific first: "a.b.example.com" yields itself,
// "b.example.com", "example.com", "com".
func ParentAnchors(host string) []string {
	host = CanonicalHost(host)
	if host == "" {
		return nil
	}
	anchors := []string{host}
	for {
		i := strings.IndexByte(host, '.')
		if i < 0 {
			break
		}
		host = host[i+1:]
		if host == "" {
			break
		}
		anchors = append(anchors, host)
	}
	return anchors
}

// Platform path classification. These recognize the platform's short-form
// clip and community-post surfaces regardless of which host variant served
// them.

// IsShortsURL reports whether the URL addresses a short-form clip surface.
func IsShortsURL(rawURL string) bool {
	p := pathOf(rawURL)
	return p == "/shorts" || strings.HasPrefix(p, "/shorts/")
}

// IsPostsURL reports whether the URL addresses a community-post surface.
func IsPostsURL(rawURL string) bool {
	p := pathOf(rawURL)
	if p == "/post" || strings.HasPrefix(p, "/post/") {
		return true
	}
	return strings.HasSuffix(p, "/community") || strings.HasSuffix(p, "/posts")
}

// ChannelHandle extracts a channel identifier from a URL path: "@handle"
// for handle URLs, or the trailing identifier of /channel/, /c/ and /user/
// paths. Returns "" when the URL is not a channel surface.
func ChannelHandle(rawURL string) string {
	p := pathOf(rawURL)
	segs := strings.Split(strings.Trim(p, "/"), "/")
	if len(segs) == 0 || segs[0] == "" {
		return ""
	}
	if strings.HasPrefix(segs[0], "@") {
		return segs[0]
	}
	if len(segs) >= 2 {
		switch segs[0] {
		case "channel", "c", "user":
			return segs[1]
		}
	}
	return ""
}

// pathOf parses out a lowercase URL path; unparseable URLs classify as "".
func pathOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Path)
}
