package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"foodshare/internal/service"
	"foodshare/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	claims    *service.ClaimService
	listings  *service.ListingService
	directory *service.DirectoryService
	reports   *service.ReportService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	claims *service.ClaimService,
	listings *service.ListingService,
	directory *service.DirectoryService,
	reports *service.ReportService,
) *Handler {
	return &Handler{
		claims:    claims,
		listings:  listings,
		directory: directory,
		reports:   reports,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/claims", h.createClaim)
		v1.GET("/claims", h.listClaims)
		v1.GET("/claims/:id", h.getClaim)
		v1.PATCH("/claims/:id/status", h.updateClaimStatus)
		v1.DELETE("/claims/:id", h.deleteClaim)

		v1.POST("/listings", h.createListing)
		v1.GET("/listings", h.listListings)
		v1.GET("/listings/joined", h.listJoinedListings)
		v1.GET("/listings/:id", h.getListing)
		v1.PUT("/listings/:id", h.updateListing)
		v1.DELETE("/listings/:id", h.deleteListing)

		v1.POST("/providers", h.createProvider)
		v1.GET("/providers", h.listProviders)
		v1.GET("/providers/:id", h.getProvider)
		v1.PUT("/providers/:id", h.updateProvider)
		v1.DELETE("/providers/:id", h.deleteProvider)

		v1.POST("/receivers", h.createReceiver)
		v1.GET("/receivers", h.listReceivers)
		v1.GET("/receivers/:id", h.getReceiver)
		v1.PUT("/receivers/:id", h.updateReceiver)
		v1.DELETE("/receivers/:id", h.deleteReceiver)

		v1.GET("/reports/dashboard", h.dashboard)
		v1.GET("/reports/providers-by-city", h.providersByCity)
		v1.GET("/reports/total-available", h.totalAvailable)
		v1.GET("/reports/food-types", h.foodTypeCounts)
		v1.GET("/reports/claimed-by-meal-type", h.claimedByMealType)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// renderError maps service errors to HTTP responses. Insufficient
// quantity carries the available amount for the claimant's display.
func renderError(c *gin.Context, err error) {
	var insufficient *service.InsufficientQuantityError
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "insufficient quantity",
			"available": insufficient.Available,
		})
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable, retry later"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
