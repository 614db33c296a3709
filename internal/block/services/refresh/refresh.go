// Package refresh propagates persisted configuration into the active rule
// snapshot. Evaluation keeps whatever snapshot it last had; a failed load
// never clears live rules.
package refresh

import (
	"context"
	"fmt"

	"github.com/haukened/tubegate/internal/block/common/log"
)

type Service struct {
	source SettingsSource
	sink   RuleSink
	logger log.Logger
}

type Options struct {
	Source SettingsSource
	Sink   RuleSink
	Logger log.Logger
}

func New(opts Options) *Service {
	return &Service{
		source: opts.Source,
		sink:   opts.Sink,
		logger: opts.Logger,
	}
}

// Refresh loads the current settings and swaps them into the rule sink.
// On load failure the previous snapshot stays active.
func (s *Service) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg, err := s.source.Load()
	if err != nil {
		s.logger.Error(map[string]any{
			"error": err.Error(),
		}, "Failed to load settings; keeping previous rule snapshot")
		return fmt.Errorf("load settings: %w", err)
	}

	s.sink.Replace(cfg.Rules, cfg.Schedules, cfg.Session, cfg.Gates(), cfg.Version)

	s.logger.Info(map[string]any{
		"rules":     len(cfg.Rules),
		"schedules": len(cfg.Schedules),
		"version":   cfg.Version,
	}, "Rule snapshot refreshed")
	return nil
}
