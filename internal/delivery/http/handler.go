package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schaplens/engine/internal/domain"
	"github.com/schaplens/engine/internal/observability"
	"github.com/schaplens/engine/internal/usecase"
)

// maxBatchSize bounds one batch request; the scraper fleet chunks its
// feeds well below this.
const maxBatchSize = 500

// Handler holds dependencies for HTTP handlers
type Handler struct {
	enrichment *usecase.EnrichmentService
	stats      *observability.Stats
}

// NewHandler creates a new HTTP handler
func NewHandler(enrichment *usecase.EnrichmentService, stats *observability.Stats) *Handler {
	return &Handler{
		enrichment: enrichment,
		stats:      stats,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "schaplens-engine",
		"version": "1.0.0",
	})
}

// Enrich normalizes and enriches a single shop-adapted product record.
func (h *Handler) Enrich(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if product.ID == "" || product.Shop == "" || product.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidRequest.Error()})
		return
	}

	c.JSON(http.StatusOK, h.enrichment.Enrich(product))
}

// EnrichBatch enriches an array of product records in request order.
func (h *Handler) EnrichBatch(c *gin.Context) {
	var products []domain.Product
	if err := c.ShouldBindJSON(&products); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if len(products) == 0 || len(products) > maxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidRequest.Error()})
		return
	}

	enriched := make([]*domain.EnrichedProduct, 0, len(products))
	for _, product := range products {
		enriched = append(enriched, h.enrichment.Enrich(product))
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(enriched),
		"products": enriched,
	})
}

// Stats returns a snapshot of the per-tier and per-deal usage counters.
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.stats.DrainStats())
}

// ResetStats clears all counters and the fallback log.
func (h *Handler) ResetStats(c *gin.Context) {
	h.stats.Reset()
	c.Status(http.StatusNoContent)
}
