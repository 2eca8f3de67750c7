package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"foodshare/internal/models"
	"foodshare/internal/service"
	"foodshare/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClaimStore struct {
	mu       sync.Mutex
	listings map[int64]int
	claims   map[int64]*models.Claim
	nextID   int64
}

func newStubClaimStore(listings map[int64]int) *stubClaimStore {
	return &stubClaimStore{
		listings: listings,
		claims:   make(map[int64]*models.Claim),
	}
}

func (s *stubClaimStore) CreateClaimTx(ctx context.Context, listingID, receiverID int64, quantity int) (*models.Claim, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	available, ok := s.listings[listingID]
	if !ok {
		return nil, 0, store.ErrListingNotFound
	}
	if quantity > available {
		return nil, 0, &store.InsufficientQuantityError{Available: available}
	}

	s.nextID++
	claim := &models.Claim{
		ID:         s.nextID,
		ListingID:  listingID,
		ReceiverID: receiverID,
		Quantity:   quantity,
		Status:     models.ClaimStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	s.claims[claim.ID] = claim
	s.listings[listingID] = available - quantity
	return claim, available - quantity, nil
}

func (s *stubClaimStore) GetClaimByID(ctx context.Context, id int64) (*models.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claim, ok := s.claims[id]
	if !ok {
		return nil, store.ErrClaimNotFound
	}
	return claim, nil
}

func (s *stubClaimStore) GetClaims(ctx context.Context) ([]models.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claims := make([]models.Claim, 0, len(s.claims))
	for _, c := range s.claims {
		claims = append(claims, *c)
	}
	return claims, nil
}

func (s *stubClaimStore) GetClaimsByListingID(ctx context.Context, listingID int64) ([]models.Claim, error) {
	return nil, nil
}

func (s *stubClaimStore) UpdateClaimStatus(ctx context.Context, claimID int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	claim, ok := s.claims[claimID]
	if !ok {
		return store.ErrClaimNotFound
	}
	claim.Status = status
	return nil
}

func (s *stubClaimStore) DeleteClaim(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.claims[id]; !ok {
		return store.ErrClaimNotFound
	}
	delete(s.claims, id)
	return nil
}

type stubInvalidator struct{}

func (stubInvalidator) InvalidateListings(ctx context.Context) error { return nil }
func (stubInvalidator) InvalidateClaims(ctx context.Context) error   { return nil }

type stubPublisher struct{}

func (stubPublisher) PublishClaimCreated(ctx context.Context, e *models.ClaimCreatedEvent) error {
	return nil
}
func (stubPublisher) PublishClaimStatusUpdated(ctx context.Context, e *models.ClaimStatusUpdatedEvent) error {
	return nil
}
func (stubPublisher) PublishClaimDeleted(ctx context.Context, e *models.ClaimDeletedEvent) error {
	return nil
}

func newTestRouter(st *stubClaimStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	claims := service.NewClaimService(st, stubInvalidator{}, stubPublisher{})
	handler := NewHandler(claims, nil, nil, nil)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/claims", handler.createClaim)
	v1.GET("/claims/:id", handler.getClaim)
	v1.PATCH("/claims/:id/status", handler.updateClaimStatus)
	v1.DELETE("/claims/:id", handler.deleteClaim)
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateClaimEndpoint_Success(t *testing.T) {
	st := newStubClaimStore(map[int64]int{10: 5})
	router := newTestRouter(st)

	w := doJSON(router, http.MethodPost, "/api/v1/claims", gin.H{
		"listing_id": 10, "receiver_id": 1, "quantity": 3,
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp service.CreateClaimResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.ClaimStatusPending, resp.Status)
	assert.Equal(t, 2, resp.Remaining)
}

func TestCreateClaimEndpoint_InsufficientQuantity(t *testing.T) {
	st := newStubClaimStore(map[int64]int{10: 2})
	router := newTestRouter(st)

	w := doJSON(router, http.MethodPost, "/api/v1/claims", gin.H{
		"listing_id": 10, "receiver_id": 1, "quantity": 5,
	})

	require.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Available int `json:"available"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Available)

	// Listing untouched.
	assert.Equal(t, 2, st.listings[10])
}

func TestCreateClaimEndpoint_ListingNotFound(t *testing.T) {
	st := newStubClaimStore(map[int64]int{})
	router := newTestRouter(st)

	w := doJSON(router, http.MethodPost, "/api/v1/claims", gin.H{
		"listing_id": 999, "receiver_id": 1, "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateClaimEndpoint_InvalidBody(t *testing.T) {
	st := newStubClaimStore(map[int64]int{10: 5})
	router := newTestRouter(st)

	w := doJSON(router, http.MethodPost, "/api/v1/claims", gin.H{
		"listing_id": 10, "receiver_id": 1, "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateClaimStatusEndpoint(t *testing.T) {
	st := newStubClaimStore(map[int64]int{10: 5})
	router := newTestRouter(st)

	w := doJSON(router, http.MethodPost, "/api/v1/claims", gin.H{
		"listing_id": 10, "receiver_id": 1, "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPatch, "/api/v1/claims/1/status", gin.H{
		"status": "Completed",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPatch, "/api/v1/claims/1/status", gin.H{
		"status": "Shipped",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteClaimEndpoint(t *testing.T) {
	st := newStubClaimStore(map[int64]int{10: 5})
	router := newTestRouter(st)

	w := doJSON(router, http.MethodPost, "/api/v1/claims", gin.H{
		"listing_id": 10, "receiver_id": 1, "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodDelete, "/api/v1/claims/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Quantity stays consumed after deletion.
	assert.Equal(t, 3, st.listings[10])

	w = doJSON(router, http.MethodDelete, "/api/v1/claims/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetClaimEndpoint_BadID(t *testing.T) {
	st := newStubClaimStore(map[int64]int{})
	router := newTestRouter(st)

	w := doJSON(router, http.MethodGet, "/api/v1/claims/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
