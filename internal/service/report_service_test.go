package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"foodshare/internal/cache"
	"foodshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReportStore struct {
	calls int
}

func (m *mockReportStore) GetDashboardCounts(ctx context.Context) (*models.DashboardCounts, error) {
	m.calls++
	return &models.DashboardCounts{Providers: 3, Receivers: 4, Listings: 5, Claims: 6}, nil
}

func (m *mockReportStore) GetProvidersByCity(ctx context.Context) ([]models.CityProviderCount, error) {
	m.calls++
	return []models.CityProviderCount{{City: "Pune", Count: 2}}, nil
}

func (m *mockReportStore) GetTotalAvailableQuantity(ctx context.Context) (int64, error) {
	m.calls++
	return 42, nil
}

func (m *mockReportStore) GetFoodTypeCounts(ctx context.Context) ([]models.FoodTypeCount, error) {
	m.calls++
	return []models.FoodTypeCount{{FoodType: "Veg", Count: 7}}, nil
}

func (m *mockReportStore) GetClaimedByMealType(ctx context.Context) ([]models.MealTypeClaimed, error) {
	m.calls++
	return []models.MealTypeClaimed{{MealType: "Lunch", TotalClaimed: 9}}, nil
}

// mockReportCache is an in-memory stand-in for the Redis view cache.
type mockReportCache struct {
	entries map[string][]byte
}

func newMockReportCache() *mockReportCache {
	return &mockReportCache{entries: make(map[string][]byte)}
}

func (m *mockReportCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, ok := m.entries[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *mockReportCache) SetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = data
	return nil
}

func TestDashboardCounts_CacheFallThrough(t *testing.T) {
	st := &mockReportStore{}
	rc := newMockReportCache()
	svc := NewReportService(st, rc)
	ctx := context.Background()

	counts, err := svc.DashboardCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), counts.Listings)
	assert.Equal(t, 1, st.calls)

	// Second read served from the cache.
	counts, err = svc.DashboardCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), counts.Listings)
	assert.Equal(t, 1, st.calls)
}

func TestTotalAvailable_CachedValue(t *testing.T) {
	st := &mockReportStore{}
	rc := newMockReportCache()
	svc := NewReportService(st, rc)
	ctx := context.Background()

	total, err := svc.TotalAvailable(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)

	total, err = svc.TotalAvailable(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
	assert.Equal(t, 1, st.calls)
}

type failingReportStore struct {
	mockReportStore
}

func (f *failingReportStore) GetClaimedByMealType(ctx context.Context) ([]models.MealTypeClaimed, error) {
	return nil, errors.New("connection reset")
}

func TestClaimedByMealType_StoreError(t *testing.T) {
	svc := NewReportService(&failingReportStore{}, newMockReportCache())

	_, err := svc.ClaimedByMealType(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
