package domain

import (
	"fmt"
	"strings"
)

// BlockType selects the rendering branch for a verdict. Schedule, permanent
// and quick verdicts carry the scope that produced the match; channel, shorts
// and posts are platform-specific categories.
type BlockType uint8

const (
	// BlockChannel is the default verdict shape, used whenever a match names
	// a specific channel rather than a URL or content pattern.
	BlockChannel BlockType = iota
	// BlockShorts is produced by the short-form clip feature gate.
	BlockShorts
	// BlockPosts is produced by the community-post feature gate.
	BlockPosts
	// BlockSchedule is produced by a rule inside an active schedule window.
	BlockSchedule
	// BlockPermanent is produced by an always-on rule.
	BlockPermanent
	// BlockQuick is produced by a rule during an active quick-block session.
	BlockQuick
)

// String returns the wire representation of the block type.
func (b BlockType) String() string {
	switch b {
	case BlockChannel:
		return "channel"
	case BlockShorts:
		return "shorts"
	case BlockPosts:
		return "posts"
	case BlockSchedule:
		return "schedule"
	case BlockPermanent:
		return "permanent"
	case BlockQuick:
		return "quick"
	default:
		return fmt.Sprintf("BlockType(%d)", b)
	}
}

// ParseBlockType converts a wire string into a BlockType. Unknown or empty
// strings fall back to BlockChannel, the least informative non-crashing
// default; this function never fails.
func ParseBlockType(s string) BlockType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shorts":
		return BlockShorts
	case "posts":
		return BlockPosts
	case "schedule":
		return BlockSchedule
	case "permanent":
		return BlockPermanent
	case "quick":
		return BlockQuick
	default:
		return BlockChannel
	}
}
