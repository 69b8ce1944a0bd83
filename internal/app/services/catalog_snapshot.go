package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/unimatch/internal/app/models"
	"github.com/yigit/unimatch/internal/pkg/metrics"
)

// catalogSnapshot serves the recommendable catalog, from the cache when one is configured.
// Cache failures are logged and fall through to the database.
type catalogSnapshot struct {
	courses CourseStore
	cache   CatalogCache
	logger  zerolog.Logger
}

func (s *catalogSnapshot) Load(ctx context.Context) ([]models.Course, error) {
	if s.cache != nil {
		catalog, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			metrics.CatalogCacheLookups.WithLabelValues("error").Inc()
			s.logger.Warn().Err(err).Msg("Catalog cache read failed, loading from database")
		case ok:
			metrics.CatalogCacheLookups.WithLabelValues("hit").Inc()
			return catalog, nil
		default:
			metrics.CatalogCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	catalog, err := s.courses.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading catalog: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, catalog); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to store catalog snapshot")
		}
	}
	return catalog, nil
}

func (s *catalogSnapshot) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to invalidate catalog snapshot")
	}
}
