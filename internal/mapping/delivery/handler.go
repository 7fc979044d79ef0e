package delivery

import (
	"errors"
	"net/http"
	"strconv"

	mappingdto "channelsync-backend/internal/mapping/dto"
	"channelsync-backend/internal/mapping/usecase"

	"github.com/gin-gonic/gin"
)

// MappingHandler handles mapping CRUD requests
type MappingHandler struct {
	mappingUsecase usecase.MappingUsecase
}

// NewMappingHandler creates a new MappingHandler
func NewMappingHandler(mappingUsecase usecase.MappingUsecase) *MappingHandler {
	return &MappingHandler{
		mappingUsecase: mappingUsecase,
	}
}

func respondMappingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrMappingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "mapping not found"})
	case errors.Is(err, usecase.ErrInvalidCadence), errors.Is(err, usecase.ErrNoChannels), errors.Is(err, usecase.ErrUnknownReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ListMappings returns a page of mappings with channels and company preloaded
// GET /api/mappings?limit=50&offset=0
func (h *MappingHandler) ListMappings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	mappings, total, err := h.mappingUsecase.ListMappings(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mappings": mappings,
		"total":    total,
	})
}

// GetMapping returns one mapping
// GET /api/mappings/:id
func (h *MappingHandler) GetMapping(c *gin.Context) {
	mapping, err := h.mappingUsecase.GetMapping(c.Param("id"))
	if err != nil {
		respondMappingError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapping)
}

// CreateMapping creates a mapping with its channel attachments
// POST /api/mappings
func (h *MappingHandler) CreateMapping(c *gin.Context) {
	var req mappingdto.CreateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mapping, err := h.mappingUsecase.CreateMapping(&req)
	if err != nil {
		respondMappingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mapping)
}

// UpdateMapping updates a mapping; channel_ids, when present, replace the set
// PUT /api/mappings/:id
func (h *MappingHandler) UpdateMapping(c *gin.Context) {
	var req mappingdto.UpdateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mapping, err := h.mappingUsecase.UpdateMapping(c.Param("id"), &req)
	if err != nil {
		respondMappingError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapping)
}

// DeleteMapping deletes a mapping and its channel attachments
// DELETE /api/mappings/:id
func (h *MappingHandler) DeleteMapping(c *gin.Context) {
	if err := h.mappingUsecase.DeleteMapping(c.Param("id")); err != nil {
		respondMappingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
