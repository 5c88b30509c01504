package admin

import (
	"context"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	"github.com/transpo-mobility/fare-engine/internal/tariff"
	"github.com/transpo-mobility/fare-engine/pkg/logger"
	wrap "github.com/transpo-mobility/fare-engine/pkg/logger/wrapper"
)

// StatsRepo aggregates booking figures for the dashboard.
type StatsRepo interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
}

// Service serves the admin dashboard aggregates.
type Service struct {
	repo    StatsRepo
	tariffs *tariff.Store

	log logger.Logger
}

func NewService(repo StatsRepo, tariffs *tariff.Store, log logger.Logger) *Service {
	return &Service{
		repo:    repo,
		tariffs: tariffs,
		log:     log,
	}
}

// Stats returns booking aggregates stamped with the active tariff version.
func (s *Service) Stats(ctx context.Context) (*models.AdminStats, error) {
	ctx = wrap.WithAction(ctx, types.ActionAdminStats)

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	stats.TariffVersion = s.tariffs.Version()

	return stats, nil
}
