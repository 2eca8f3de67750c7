package service

import (
	"context"
	"errors"
	"fmt"

	"foodshare/internal/cache"
	"foodshare/internal/models"
	"foodshare/internal/util"

	"go.uber.org/zap"
)

// ReportStore is the persistence surface for read-only aggregations.
type ReportStore interface {
	GetDashboardCounts(ctx context.Context) (*models.DashboardCounts, error)
	GetProvidersByCity(ctx context.Context) ([]models.CityProviderCount, error)
	GetTotalAvailableQuantity(ctx context.Context) (int64, error)
	GetFoodTypeCounts(ctx context.Context) ([]models.FoodTypeCount, error)
	GetClaimedByMealType(ctx context.Context) ([]models.MealTypeClaimed, error)
}

// ReportCache serves report answers with fall-through to the store.
type ReportCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}) error
}

// ReportService answers presentation-layer aggregations. Stateless; the
// only subtlety is the read cache, which never sits in front of the
// claim transaction's own reads.
type ReportService struct {
	store  ReportStore
	cache  ReportCache
	logger *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(store ReportStore, cache ReportCache) *ReportService {
	return &ReportService{
		store:  store,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// DashboardCounts returns headline row counts
func (s *ReportService) DashboardCounts(ctx context.Context) (*models.DashboardCounts, error) {
	var counts models.DashboardCounts
	key := cache.KeyReportPrefix + "dashboard"

	if s.cachedInto(ctx, "dashboard", key, &counts) {
		return &counts, nil
	}

	fresh, err := s.store.GetDashboardCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.fill(ctx, key, fresh)
	return fresh, nil
}

// ProvidersByCity returns provider counts per city
func (s *ReportService) ProvidersByCity(ctx context.Context) ([]models.CityProviderCount, error) {
	var rows []models.CityProviderCount
	key := cache.KeyReportPrefix + "providers_by_city"

	if s.cachedInto(ctx, "providers_by_city", key, &rows) {
		return rows, nil
	}

	rows, err := s.store.GetProvidersByCity(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.fill(ctx, key, rows)
	return rows, nil
}

// TotalAvailable returns the summed remaining quantity over all listings
func (s *ReportService) TotalAvailable(ctx context.Context) (int64, error) {
	var total int64
	key := cache.KeyReportPrefix + "total_available"

	if s.cachedInto(ctx, "total_available", key, &total) {
		return total, nil
	}

	total, err := s.store.GetTotalAvailableQuantity(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.fill(ctx, key, total)
	return total, nil
}

// FoodTypeCounts returns listing counts per food type
func (s *ReportService) FoodTypeCounts(ctx context.Context) ([]models.FoodTypeCount, error) {
	var rows []models.FoodTypeCount
	key := cache.KeyReportPrefix + "food_types"

	if s.cachedInto(ctx, "food_types", key, &rows) {
		return rows, nil
	}

	rows, err := s.store.GetFoodTypeCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.fill(ctx, key, rows)
	return rows, nil
}

// ClaimedByMealType returns claimed quantity totals per meal type
func (s *ReportService) ClaimedByMealType(ctx context.Context) ([]models.MealTypeClaimed, error) {
	var rows []models.MealTypeClaimed
	key := cache.KeyReportPrefix + "claimed_by_meal_type"

	if s.cachedInto(ctx, "claimed_by_meal_type", key, &rows) {
		return rows, nil
	}

	rows, err := s.store.GetClaimedByMealType(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.fill(ctx, key, rows)
	return rows, nil
}

func (s *ReportService) cachedInto(ctx context.Context, report, key string, dest interface{}) bool {
	err := s.cache.GetJSON(ctx, key, dest)
	if err == nil {
		util.ReportCacheHitsTotal.WithLabelValues(report, "hit").Inc()
		return true
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("Report cache read failed", zap.String("report", report), zap.Error(err))
	}
	util.ReportCacheHitsTotal.WithLabelValues(report, "miss").Inc()
	return false
}

func (s *ReportService) fill(ctx context.Context, key string, value interface{}) {
	if err := s.cache.SetJSON(ctx, key, value); err != nil {
		s.logger.Warn("Report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
