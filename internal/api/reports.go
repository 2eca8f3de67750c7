package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// dashboard returns headline row counts
func (h *Handler) dashboard(c *gin.Context) {
	counts, err := h.reports.DashboardCounts(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// providersByCity returns provider counts grouped by city
func (h *Handler) providersByCity(c *gin.Context) {
	rows, err := h.reports.ProvidersByCity(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers_by_city": rows})
}

// totalAvailable returns the summed remaining quantity across listings
func (h *Handler) totalAvailable(c *gin.Context) {
	total, err := h.reports.TotalAvailable(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_available": total})
}

// foodTypeCounts returns listing counts grouped by food type
func (h *Handler) foodTypeCounts(c *gin.Context) {
	rows, err := h.reports.FoodTypeCounts(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"food_types": rows})
}

// claimedByMealType returns claimed quantity totals grouped by meal type
func (h *Handler) claimedByMealType(c *gin.Context) {
	rows, err := h.reports.ClaimedByMealType(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claimed_by_meal_type": rows})
}
