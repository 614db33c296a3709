package refresh

import (
	"github.com/haukened/tubegate/internal/block/domain"
	"github.com/haukened/tubegate/internal/block/repos/settings"
)

// SettingsSource loads the persisted configuration snapshot.
type SettingsSource interface {
	Load() (settings.Settings, error)
}

// RuleSink atomically swaps the active rule snapshot.
type RuleSink interface {
	Replace(rules []domain.Rule, schedules []domain.Schedule, session domain.QuickBlockSession, gates domain.FeatureGates, version uint64)
}
