package apierr

import (
	"errors"
	"net/http"

	"channelsync-backend/pkg/hubspot"
	"channelsync-backend/pkg/slackapi"

	"github.com/gin-gonic/gin"
)

// RespondProvider maps an outbound provider error to an HTTP response:
// rate limits pass through as 429, missing Slack scopes become a 400 with
// remediation instructions, anything else is a 500 with the provider message.
func RespondProvider(c *gin.Context, err error) {
	var rateLimit *hubspot.RateLimitError
	if errors.As(err, &rateLimit) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": rateLimit.Error()})
		return
	}

	var missingScope *slackapi.MissingScopeError
	if errors.As(err, &missingScope) {
		c.JSON(http.StatusBadRequest, gin.H{"error": missingScope.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
