package delivery

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"channelsync-backend/internal/sync/usecase"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SyncHandler handles the sync trigger and the run audit listing
type SyncHandler struct {
	syncUsecase usecase.SyncUsecase
	cronSecret  string
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(syncUsecase usecase.SyncUsecase, cronSecret string) *SyncHandler {
	return &SyncHandler{
		syncUsecase: syncUsecase,
		cronSecret:  cronSecret,
	}
}

type syncRequest struct {
	MappingID string `json:"mappingId"`
	Test      bool   `json:"test"`
}

// bearerToken extracts the token from an Authorization header, if any.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// Trigger runs a sync. One endpoint, two invocation shapes:
//
//   - Scheduled (external cron): no session; authorized by the shared bearer
//     secret when one is configured. Runs the cadence policy and records the
//     run in the cron log. Failure details stay out of the response because
//     this path is reachable without an admin session.
//   - Manual (admin session): optional body with mappingId to scope the run
//     and test to suppress writes. Ignores cadence, writes no cron log.
//
// POST /api/sync
func (h *SyncHandler) Trigger(c *gin.Context) {
	session := sessions.Default(c)
	userID, _ := session.Get("userID").(string)

	if userID == "" {
		// Scheduled shape
		if h.cronSecret != "" && bearerToken(c) != h.cronSecret {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, err := h.syncUsecase.RunScheduled(c.Request.Context(), time.Now())
		if err != nil {
			log.Printf("[Sync] Scheduled run failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "sync run failed"})
			return
		}

		c.JSON(http.StatusOK, result)
		return
	}

	// Manual shape
	var req syncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	result, err := h.syncUsecase.RunManual(c.Request.Context(), req.MappingID, req.Test)
	if err != nil {
		if errors.Is(err, usecase.ErrSyncMappingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "mapping not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListCronLogs returns a page of sync runs with their per-mapping children
// GET /api/cron-logs?limit=20&offset=0
func (h *SyncHandler) ListCronLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, total, err := h.syncUsecase.ListCronLogs(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"total": total,
	})
}
