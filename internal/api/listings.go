package api

import (
	"database/sql"
	"net/http"
	"time"

	"foodshare/internal/models"

	"github.com/gin-gonic/gin"
)

type listingRequest struct {
	FoodName   string    `json:"food_name" binding:"required"`
	Quantity   int       `json:"quantity" binding:"min=0"`
	ExpiryDate time.Time `json:"expiry_date" binding:"required"`
	ProviderID *int64    `json:"provider_id"`
	City       string    `json:"city"`
	FoodType   string    `json:"food_type"`
	MealType   string    `json:"meal_type"`
}

func (r *listingRequest) toModel() *models.Listing {
	listing := &models.Listing{
		FoodName:   r.FoodName,
		Quantity:   r.Quantity,
		ExpiryDate: r.ExpiryDate,
		City:       r.City,
		FoodType:   r.FoodType,
		MealType:   r.MealType,
	}
	if r.ProviderID != nil {
		listing.ProviderID = sql.NullInt64{Int64: *r.ProviderID, Valid: true}
	}
	return listing
}

// createListing handles listing creation
func (h *Handler) createListing(c *gin.Context) {
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	listing := req.toModel()
	if err := h.listings.CreateListing(c.Request.Context(), listing); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listing)
}

// listListings handles listing all listings
func (h *Handler) listListings(c *gin.Context) {
	listings, err := h.listings.ListListings(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// listJoinedListings returns listings with provider contact details
func (h *Handler) listJoinedListings(c *gin.Context) {
	listings, err := h.listings.ListJoinedListings(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// getListing handles get listing by ID
func (h *Handler) getListing(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	listing, err := h.listings.GetListing(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// updateListing handles administrative edits, including direct quantity
// overrides
func (h *Handler) updateListing(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	listing := req.toModel()
	listing.ID = id
	if err := h.listings.UpdateListing(c.Request.Context(), listing); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// deleteListing handles listing deletion with the claim cascade
func (h *Handler) deleteListing(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.listings.DeleteListing(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
