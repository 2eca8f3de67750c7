package store

import (
	"context"

	"foodshare/internal/models"
)

// GetDashboardCounts retrieves headline row counts
func (s *Store) GetDashboardCounts(ctx context.Context) (*models.DashboardCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM providers) AS providers,
			(SELECT COUNT(*) FROM receivers) AS receivers,
			(SELECT COUNT(*) FROM listings)  AS listings,
			(SELECT COUNT(*) FROM claims)    AS claims`

	var counts models.DashboardCounts
	if err := s.db.GetContext(ctx, &counts, query); err != nil {
		return nil, err
	}
	return &counts, nil
}

// GetProvidersByCity counts providers per city, most first
func (s *Store) GetProvidersByCity(ctx context.Context) ([]models.CityProviderCount, error) {
	query := `
		SELECT city, COUNT(*) AS count
		FROM providers
		GROUP BY city
		ORDER BY count DESC`

	var rows []models.CityProviderCount
	err := s.db.SelectContext(ctx, &rows, query)
	return rows, err
}

// GetTotalAvailableQuantity sums the remaining quantity across listings
func (s *Store) GetTotalAvailableQuantity(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.GetContext(ctx, &total,
		"SELECT COALESCE(SUM(quantity), 0) FROM listings")
	return total, err
}

// GetFoodTypeCounts counts listings per food type
func (s *Store) GetFoodTypeCounts(ctx context.Context) ([]models.FoodTypeCount, error) {
	query := `
		SELECT food_type, COUNT(*) AS count
		FROM listings
		GROUP BY food_type
		ORDER BY count DESC`

	var rows []models.FoodTypeCount
	err := s.db.SelectContext(ctx, &rows, query)
	return rows, err
}

// GetClaimedByMealType sums claimed quantity per meal type. The join
// drops claims whose listing was deleted, matching the source reports.
func (s *Store) GetClaimedByMealType(ctx context.Context) ([]models.MealTypeClaimed, error) {
	query := `
		SELECT l.meal_type, SUM(c.quantity) AS total_claimed
		FROM claims c
		JOIN listings l ON c.listing_id = l.id
		GROUP BY l.meal_type
		ORDER BY total_claimed DESC`

	var rows []models.MealTypeClaimed
	err := s.db.SelectContext(ctx, &rows, query)
	return rows, err
}
