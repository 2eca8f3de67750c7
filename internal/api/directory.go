package api

import (
	"net/http"

	"foodshare/internal/models"

	"github.com/gin-gonic/gin"
)

type providerRequest struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type"`
	Address string `json:"address"`
	City    string `json:"city"`
	Contact string `json:"contact"`
}

type receiverRequest struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type"`
	City    string `json:"city"`
	Contact string `json:"contact"`
}

// createProvider handles provider registration
func (h *Handler) createProvider(c *gin.Context) {
	var req providerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	provider := &models.Provider{
		Name:    req.Name,
		Type:    req.Type,
		Address: req.Address,
		City:    req.City,
		Contact: req.Contact,
	}
	if err := h.directory.CreateProvider(c.Request.Context(), provider); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, provider)
}

// listProviders handles listing all providers
func (h *Handler) listProviders(c *gin.Context) {
	providers, err := h.directory.ListProviders(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// getProvider handles get provider by ID
func (h *Handler) getProvider(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	provider, err := h.directory.GetProvider(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

// updateProvider handles provider edits
func (h *Handler) updateProvider(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req providerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	provider := &models.Provider{
		ID:      id,
		Name:    req.Name,
		Type:    req.Type,
		Address: req.Address,
		City:    req.City,
		Contact: req.Contact,
	}
	if err := h.directory.UpdateProvider(c.Request.Context(), provider); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

// deleteProvider handles provider deletion (no cascade to listings)
func (h *Handler) deleteProvider(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.directory.DeleteProvider(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// createReceiver handles receiver registration
func (h *Handler) createReceiver(c *gin.Context) {
	var req receiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	receiver := &models.Receiver{
		Name:    req.Name,
		Type:    req.Type,
		City:    req.City,
		Contact: req.Contact,
	}
	if err := h.directory.CreateReceiver(c.Request.Context(), receiver); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receiver)
}

// listReceivers handles listing all receivers
func (h *Handler) listReceivers(c *gin.Context) {
	receivers, err := h.directory.ListReceivers(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"receivers": receivers})
}

// getReceiver handles get receiver by ID
func (h *Handler) getReceiver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	receiver, err := h.directory.GetReceiver(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, receiver)
}

// updateReceiver handles receiver edits
func (h *Handler) updateReceiver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req receiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	receiver := &models.Receiver{
		ID:      id,
		Name:    req.Name,
		Type:    req.Type,
		City:    req.City,
		Contact: req.Contact,
	}
	if err := h.directory.UpdateReceiver(c.Request.Context(), receiver); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, receiver)
}

// deleteReceiver handles receiver deletion (no cascade to claims)
func (h *Handler) deleteReceiver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.directory.DeleteReceiver(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
