package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// NavigationEvent is one candidate navigation or content render presented to
// the matcher. ContentText is populated only for content-type events.
type NavigationEvent struct {
	URL         string
	Host        string
	ContentText string
}

// NewNavigationEvent parses a raw URL into an event, deriving a canonical
// lowercase host with any port stripped.
func NewNavigationEvent(rawURL, contentText string) (NavigationEvent, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return NavigationEvent{}, fmt.Errorf("invalid event url: %w", err)
	}
	if u.Host == "" {
		return NavigationEvent{}, fmt.Errorf("event url has no host: %q", rawURL)
	}
	return NavigationEvent{
		URL:         u.String(),
		Host:        strings.ToLower(u.Hostname()),
		ContentText: contentText,
	}, nil
}

// HasContent reports whether the event carries extracted page text.
func (e NavigationEvent) HasContent() bool { return e.ContentText != "" }
