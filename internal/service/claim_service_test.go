package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"foodshare/internal/models"
	"foodshare/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClaimStore serializes claim transactions with a mutex, mirroring
// the row lock the real store takes.
type mockClaimStore struct {
	mu       sync.Mutex
	listings map[int64]int
	claims   map[int64]*models.Claim
	nextID   int64
	failWith error
}

func newMockClaimStore(listings map[int64]int) *mockClaimStore {
	return &mockClaimStore{
		listings: listings,
		claims:   make(map[int64]*models.Claim),
	}
}

func (m *mockClaimStore) CreateClaimTx(ctx context.Context, listingID, receiverID int64, quantity int) (*models.Claim, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, 0, m.failWith
	}

	available, ok := m.listings[listingID]
	if !ok {
		return nil, 0, store.ErrListingNotFound
	}
	if quantity > available {
		return nil, 0, &store.InsufficientQuantityError{Available: available}
	}

	m.nextID++
	claim := &models.Claim{
		ID:         m.nextID,
		ListingID:  listingID,
		ReceiverID: receiverID,
		Quantity:   quantity,
		Status:     models.ClaimStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	m.claims[claim.ID] = claim
	m.listings[listingID] = available - quantity
	return claim, available - quantity, nil
}

func (m *mockClaimStore) GetClaimByID(ctx context.Context, id int64) (*models.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	claim, ok := m.claims[id]
	if !ok {
		return nil, store.ErrClaimNotFound
	}
	return claim, nil
}

func (m *mockClaimStore) GetClaims(ctx context.Context) ([]models.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	claims := make([]models.Claim, 0, len(m.claims))
	for _, c := range m.claims {
		claims = append(claims, *c)
	}
	return claims, nil
}

func (m *mockClaimStore) GetClaimsByListingID(ctx context.Context, listingID int64) ([]models.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var claims []models.Claim
	for _, c := range m.claims {
		if c.ListingID == listingID {
			claims = append(claims, *c)
		}
	}
	return claims, nil
}

func (m *mockClaimStore) UpdateClaimStatus(ctx context.Context, claimID int64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	claim, ok := m.claims[claimID]
	if !ok {
		return store.ErrClaimNotFound
	}
	claim.Status = status
	return nil
}

func (m *mockClaimStore) DeleteClaim(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.claims[id]; !ok {
		return store.ErrClaimNotFound
	}
	delete(m.claims, id)
	return nil
}

func (m *mockClaimStore) quantity(listingID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listings[listingID]
}

func (m *mockClaimStore) claimCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.claims)
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidateListings(ctx context.Context) error { return nil }
func (noopInvalidator) InvalidateClaims(ctx context.Context) error   { return nil }

type noopClaimPublisher struct{}

func (noopClaimPublisher) PublishClaimCreated(ctx context.Context, e *models.ClaimCreatedEvent) error {
	return nil
}
func (noopClaimPublisher) PublishClaimStatusUpdated(ctx context.Context, e *models.ClaimStatusUpdatedEvent) error {
	return nil
}
func (noopClaimPublisher) PublishClaimDeleted(ctx context.Context, e *models.ClaimDeletedEvent) error {
	return nil
}

func newClaimService(st *mockClaimStore) *ClaimService {
	return NewClaimService(st, noopInvalidator{}, noopClaimPublisher{})
}

func TestCreateClaim_Success(t *testing.T) {
	st := newMockClaimStore(map[int64]int{10: 5})
	svc := newClaimService(st)

	resp, err := svc.CreateClaim(context.Background(), &CreateClaimRequest{
		ListingID: 10, ReceiverID: 1, Quantity: 3,
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.ClaimID)
	assert.Equal(t, models.ClaimStatusPending, resp.Status)
	assert.Equal(t, 2, resp.Remaining)
	assert.Equal(t, 2, st.quantity(10))

	claim, err := svc.GetClaim(context.Background(), resp.ClaimID)
	require.NoError(t, err)
	assert.Equal(t, 3, claim.Quantity)
	assert.Equal(t, models.ClaimStatusPending, claim.Status)
}

func TestCreateClaim_InsufficientQuantity(t *testing.T) {
	st := newMockClaimStore(map[int64]int{10: 2})
	svc := newClaimService(st)

	_, err := svc.CreateClaim(context.Background(), &CreateClaimRequest{
		ListingID: 10, ReceiverID: 1, Quantity: 5,
	})

	var insufficient *InsufficientQuantityError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, insufficient.Available)

	// Store unchanged: quantity untouched, no claim row.
	assert.Equal(t, 2, st.quantity(10))
	assert.Zero(t, st.claimCount())
}

func TestCreateClaim_ListingNotFound(t *testing.T) {
	st := newMockClaimStore(map[int64]int{10: 5})
	svc := newClaimService(st)

	_, err := svc.CreateClaim(context.Background(), &CreateClaimRequest{
		ListingID: 999, ReceiverID: 1, Quantity: 1,
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, st.claimCount())
}

func TestCreateClaim_InvalidQuantity(t *testing.T) {
	st := newMockClaimStore(map[int64]int{10: 5})
	svc := newClaimService(st)

	_, err := svc.CreateClaim(context.Background(), &CreateClaimRequest{
		ListingID: 10, ReceiverID: 1, Quantity: 0,
	})
	assert.Error(t, err)
	assert.Equal(t, 5, st.quantity(10))
}

func TestCreateClaim_StoreUnavailable(t *testing.T) {
	st := newMockClaimStore(map[int64]int{10: 5})
	st.failWith = errors.New("connection refused")
	svc := newClaimService(st)

	_, err := svc.CreateClaim(context.Background(), &CreateClaimRequest{
		ListingID: 10, ReceiverID: 1, Quantity: 1,
	})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestCreateClaim_ConcurrentContention(t *testing.T) {
	// Two claimants racing for 3 of 5: exactly one succeeds, the loser
	// observes the post-decrement quantity.
	st := newMockClaimStore(map[int64]int{10: 5})
	svc := newClaimService(st)

	var successCount atomic.Int32
	var insufficientAvailable atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateClaim(context.Background(), &CreateClaimRequest{
				ListingID: 10, ReceiverID: 1, Quantity: 3,
			})
			if err == nil {
				successCount.Add(1)
				return
			}
			var insufficient *InsufficientQuantityError
			if errors.As(err, &insufficient) {
				insufficientAvailable.Store(int32(insufficient.Available))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successCount.Load())
	assert.Equal(t, int32(2), insufficientAvailable.Load())
	assert.Equal(t, 2, st.quantity(10))
}

func TestCreateClaim_ConcurrentNeverNegative(t *testing.T) {
	initial := 20
	requests := 50

	st := newMockClaimStore(map[int64]int{10: initial})
	svc := newClaimService(st)

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateClaim(context.Background(), &CreateClaimRequest{
				ListingID: 10, ReceiverID: 1, Quantity: 1,
			})
			if err == nil {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(initial), successCount.Load())
	assert.Equal(t, 0, st.quantity(10))
}

func TestCreateClaim_Conservation(t *testing.T) {
	// Remaining quantity equals initial minus the sum of successful
	// claims; failed claims change nothing.
	st := newMockClaimStore(map[int64]int{10: 10})
	svc := newClaimService(st)
	ctx := context.Background()

	quantities := []int{4, 3, 5, 2}
	claimed := 0
	for _, q := range quantities {
		_, err := svc.CreateClaim(ctx, &CreateClaimRequest{ListingID: 10, ReceiverID: 1, Quantity: q})
		if err == nil {
			claimed += q
		}
	}

	assert.Equal(t, 10-claimed, st.quantity(10))

	claims, err := svc.ListClaims(ctx)
	require.NoError(t, err)
	sum := 0
	for _, c := range claims {
		sum += c.Quantity
	}
	assert.Equal(t, claimed, sum)
}

func TestUpdateStatus_OpenSet(t *testing.T) {
	st := newMockClaimStore(map[int64]int{10: 5})
	svc := newClaimService(st)
	ctx := context.Background()

	resp, err := svc.CreateClaim(ctx, &CreateClaimRequest{ListingID: 10, ReceiverID: 1, Quantity: 1})
	require.NoError(t, err)

	// No transition table: any known status is settable at any time,
	// including back to Pending.
	for _, status := range []string{
		models.ClaimStatusCompleted,
		models.ClaimStatusPending,
		models.ClaimStatusCancelled,
		models.ClaimStatusCompleted,
	} {
		require.NoError(t, svc.UpdateStatus(ctx, resp.ClaimID, status))
		claim, err := svc.GetClaim(ctx, resp.ClaimID)
		require.NoError(t, err)
		assert.Equal(t, status, claim.Status)
	}
}

func TestUpdateStatus_InvalidValue(t *testing.T) {
	st := newMockClaimStore(map[int64]int{10: 5})
	svc := newClaimService(st)

	err := svc.UpdateStatus(context.Background(), 1, "Shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	st := newMockClaimStore(map[int64]int{})
	svc := newClaimService(st)

	err := svc.UpdateStatus(context.Background(), 42, models.ClaimStatusCompleted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteClaim_DoesNotRestoreQuantity(t *testing.T) {
	st := newMockClaimStore(map[int64]int{10: 5})
	svc := newClaimService(st)
	ctx := context.Background()

	resp, err := svc.CreateClaim(ctx, &CreateClaimRequest{ListingID: 10, ReceiverID: 1, Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, 2, st.quantity(10))

	require.NoError(t, svc.UpdateStatus(ctx, resp.ClaimID, models.ClaimStatusCancelled))
	require.NoError(t, svc.DeleteClaim(ctx, resp.ClaimID))

	// The reserved quantity stays consumed after cancellation and
	// deletion.
	assert.Equal(t, 2, st.quantity(10))

	_, err = svc.GetClaim(ctx, resp.ClaimID)
	assert.ErrorIs(t, err, ErrNotFound)
}
