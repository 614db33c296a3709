// Package contract is the serialization seam between the enforcement context
// and the presentation surface. A verdict is flattened into query-string
// parameters at the enforcement point and decoded back with explicit, total
// defaults on the blocked page; the page renders from the encoded fields
// alone, with no query back into rule state.
package contract

import (
	"net/url"
	"strconv"
	"time"

	"github.com/haukened/tubegate/internal/block/domain"
)

// Contract keys. Every value is optional on decode; defaults below.
const (
	KeyBlockType    = "blockType"
	KeyChannelName  = "channelName"
	KeyBlockedURL   = "blockedUrl"
	KeyMatchType    = "matchType"
	KeyMatchedValue = "matchedValue"
	KeyScheduleName = "scheduleName"
	KeyTimeWindow   = "timeWindow"
	KeyQuickEndTime = "quickBlockEndTime"
)

// Decode defaults.
const (
	DefaultChannelName  = "Unknown Channel"
	DefaultScheduleName = "Unknown Schedule"
)

// Encode flattens a verdict into query-string values. Only fields populated
// on the decision are emitted; decode restores the documented defaults.
func Encode(d domain.BlockDecision) url.Values {
	v := url.Values{}
	v.Set(KeyBlockType, d.Type.String())
	if d.ChannelName != "" {
		v.Set(KeyChannelName, d.ChannelName)
	}
	if d.BlockedURL != "" {
		v.Set(KeyBlockedURL, d.BlockedURL)
	}
	if d.MatchType != domain.MatchNone {
		v.Set(KeyMatchType, d.MatchType.String())
	}
	if d.MatchedValue != "" {
		v.Set(KeyMatchedValue, d.MatchedValue)
	}
	if d.ScheduleName != "" {
		v.Set(KeyScheduleName, d.ScheduleName)
	}
	if d.TimeWindow != "" {
		v.Set(KeyTimeWindow, d.TimeWindow)
	}
	if !d.QuickEndsAt.IsZero() {
		v.Set(KeyQuickEndTime, strconv.FormatInt(d.QuickEndsAt.UnixMilli(), 10))
	}
	return v
}

// Decode rebuilds a verdict from query-string values. Decoding is total:
// missing fields take their defaults, unknown block types fall back to the
// channel branch, and a malformed quickBlockEndTime reads as already
// expired. It never fails the render.
func Decode(v url.Values) domain.BlockDecision {
	d := domain.BlockDecision{
		Type:         domain.ParseBlockType(v.Get(KeyBlockType)),
		ChannelName:  withDefault(v.Get(KeyChannelName), DefaultChannelName),
		BlockedURL:   v.Get(KeyBlockedURL),
		MatchType:    domain.ParseMatchType(v.Get(KeyMatchType)),
		MatchedValue: v.Get(KeyMatchedValue),
		ScheduleName: withDefault(v.Get(KeyScheduleName), DefaultScheduleName),
		TimeWindow:   v.Get(KeyTimeWindow),
	}
	if ms, err := strconv.ParseInt(v.Get(KeyQuickEndTime), 10, 64); err == nil && ms > 0 {
		d.QuickEndsAt = time.UnixMilli(ms)
	}
	return d
}

func withDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
