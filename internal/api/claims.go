package api

import (
	"net/http"

	"foodshare/internal/service"

	"github.com/gin-gonic/gin"
)

// createClaim handles the quantity-safe claim flow
func (h *Handler) createClaim(c *gin.Context) {
	var req service.CreateClaimRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.claims.CreateClaim(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// listClaims handles listing all claims
func (h *Handler) listClaims(c *gin.Context) {
	claims, err := h.claims.ListClaims(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claims": claims})
}

// getClaim handles get claim by ID
func (h *Handler) getClaim(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	claim, err := h.claims.GetClaim(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, claim)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// updateClaimStatus handles operator status changes
func (h *Handler) updateClaimStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.claims.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claim_id": id, "status": req.Status})
}

// deleteClaim handles claim deletion. The claimed quantity is not
// returned to the listing.
func (h *Handler) deleteClaim(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.claims.DeleteClaim(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
