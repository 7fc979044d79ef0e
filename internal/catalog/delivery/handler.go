package delivery

import (
	"errors"
	"net/http"
	"strconv"

	catalogdto "channelsync-backend/internal/catalog/dto"
	"channelsync-backend/internal/catalog/usecase"
	"channelsync-backend/pkg/apierr"

	"github.com/gin-gonic/gin"
)

// CatalogHandler handles Slack channel and HubSpot company reference requests
type CatalogHandler struct {
	catalogUsecase usecase.CatalogUsecase
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogUsecase usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{
		catalogUsecase: catalogUsecase,
	}
}

func pageParams(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

// respondDelete maps the shared delete-guard outcomes.
func respondDelete(c *gin.Context, err error, notFound error, notFoundMsg string) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var referenced *usecase.ReferencedError
	switch {
	case errors.Is(err, notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.As(err, &referenced):
		c.JSON(http.StatusBadRequest, gin.H{"error": referenced.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ListSlackChannels returns a page of Slack channel references
// GET /api/slack-channels?limit=50&offset=0
func (h *CatalogHandler) ListSlackChannels(c *gin.Context) {
	limit, offset := pageParams(c)

	channels, total, err := h.catalogUsecase.ListSlackChannels(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"channels": channels,
		"total":    total,
	})
}

// GetSlackChannel returns one Slack channel reference
// GET /api/slack-channels/:id
func (h *CatalogHandler) GetSlackChannel(c *gin.Context) {
	channel, err := h.catalogUsecase.GetSlackChannel(c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrChannelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "slack channel not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, channel)
}

// CreateSlackChannel creates a Slack channel reference
// POST /api/slack-channels
func (h *CatalogHandler) CreateSlackChannel(c *gin.Context) {
	var req catalogdto.CreateSlackChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	channel, err := h.catalogUsecase.CreateSlackChannel(&req)
	if err != nil {
		if errors.Is(err, usecase.ErrDuplicateChannel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, channel)
}

// UpdateSlackChannel updates a Slack channel reference
// PUT /api/slack-channels/:id
func (h *CatalogHandler) UpdateSlackChannel(c *gin.Context) {
	var req catalogdto.UpdateSlackChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	channel, err := h.catalogUsecase.UpdateSlackChannel(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrChannelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "slack channel not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, channel)
}

// DeleteSlackChannel deletes a Slack channel reference unless a mapping uses it
// DELETE /api/slack-channels/:id
func (h *CatalogHandler) DeleteSlackChannel(c *gin.Context) {
	err := h.catalogUsecase.DeleteSlackChannel(c.Param("id"))
	respondDelete(c, err, usecase.ErrChannelNotFound, "slack channel not found")
}

// SyncSlackChannels bulk-imports channel references from the Slack workspace
// POST /api/slack-channels/sync
func (h *CatalogHandler) SyncSlackChannels(c *gin.Context) {
	resp, err := h.catalogUsecase.SyncSlackChannels(c.Request.Context())
	if err != nil {
		apierr.RespondProvider(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListHubspotCompanies returns a page of HubSpot company references
// GET /api/hubspot-companies?limit=50&offset=0
func (h *CatalogHandler) ListHubspotCompanies(c *gin.Context) {
	limit, offset := pageParams(c)

	companies, total, err := h.catalogUsecase.ListHubspotCompanies(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"companies": companies,
		"total":     total,
	})
}

// GetHubspotCompany returns one HubSpot company reference
// GET /api/hubspot-companies/:id
func (h *CatalogHandler) GetHubspotCompany(c *gin.Context) {
	company, err := h.catalogUsecase.GetHubspotCompany(c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hubspot company not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, company)
}

// CreateHubspotCompany creates a HubSpot company reference
// POST /api/hubspot-companies
func (h *CatalogHandler) CreateHubspotCompany(c *gin.Context) {
	var req catalogdto.CreateHubspotCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.catalogUsecase.CreateHubspotCompany(&req)
	if err != nil {
		if errors.Is(err, usecase.ErrDuplicateCompany) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, company)
}

// UpdateHubspotCompany updates a HubSpot company reference
// PUT /api/hubspot-companies/:id
func (h *CatalogHandler) UpdateHubspotCompany(c *gin.Context) {
	var req catalogdto.UpdateHubspotCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.catalogUsecase.UpdateHubspotCompany(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hubspot company not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, company)
}

// DeleteHubspotCompany deletes a company reference unless a mapping uses it
// DELETE /api/hubspot-companies/:id
func (h *CatalogHandler) DeleteHubspotCompany(c *gin.Context) {
	err := h.catalogUsecase.DeleteHubspotCompany(c.Param("id"))
	respondDelete(c, err, usecase.ErrCompanyNotFound, "hubspot company not found")
}

// SyncHubspotCompanies bulk-imports company references from HubSpot
// POST /api/hubspot-companies/sync
func (h *CatalogHandler) SyncHubspotCompanies(c *gin.Context) {
	resp, err := h.catalogUsecase.SyncHubspotCompanies(c.Request.Context())
	if err != nil {
		apierr.RespondProvider(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
