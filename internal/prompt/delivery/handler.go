package delivery

import (
	"errors"
	"net/http"
	"strconv"

	promptdto "channelsync-backend/internal/prompt/dto"
	"channelsync-backend/internal/prompt/usecase"

	"github.com/gin-gonic/gin"
)

// PromptHandler handles prompt CRUD requests
type PromptHandler struct {
	promptUsecase usecase.PromptUsecase
}

// NewPromptHandler creates a new PromptHandler
func NewPromptHandler(promptUsecase usecase.PromptUsecase) *PromptHandler {
	return &PromptHandler{
		promptUsecase: promptUsecase,
	}
}

// ListPrompts returns a page of prompts
// GET /api/prompts?limit=50&offset=0
func (h *PromptHandler) ListPrompts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	prompts, total, err := h.promptUsecase.ListPrompts(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prompts": prompts,
		"total":   total,
	})
}

// GetActivePrompt returns the currently active prompt
// GET /api/prompts/active
func (h *PromptHandler) GetActivePrompt(c *gin.Context) {
	prompt, err := h.promptUsecase.GetActivePrompt()
	if err != nil {
		if errors.Is(err, usecase.ErrNoActivePrompt) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active prompt"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prompt)
}

// GetPrompt returns one prompt
// GET /api/prompts/:id
func (h *PromptHandler) GetPrompt(c *gin.Context) {
	prompt, err := h.promptUsecase.GetPrompt(c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "prompt not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prompt)
}

// CreatePrompt creates a prompt; is_active=true deactivates all others
// POST /api/prompts
func (h *PromptHandler) CreatePrompt(c *gin.Context) {
	var req promptdto.CreatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prompt, err := h.promptUsecase.CreatePrompt(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, prompt)
}

// UpdatePrompt updates a prompt; is_active=true deactivates all others
// PUT /api/prompts/:id
func (h *PromptHandler) UpdatePrompt(c *gin.Context) {
	var req promptdto.UpdatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prompt, err := h.promptUsecase.UpdatePrompt(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "prompt not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, prompt)
}

// DeletePrompt deletes a prompt
// DELETE /api/prompts/:id
func (h *PromptHandler) DeletePrompt(c *gin.Context) {
	if err := h.promptUsecase.DeletePrompt(c.Param("id")); err != nil {
		if errors.Is(err, usecase.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "prompt not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
