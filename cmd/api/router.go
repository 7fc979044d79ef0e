package api

import (
	"net/http"

	authdelivery "channelsync-backend/internal/auth/delivery"
	catalogdelivery "channelsync-backend/internal/catalog/delivery"
	mappingdelivery "channelsync-backend/internal/mapping/delivery"
	promptdelivery "channelsync-backend/internal/prompt/delivery"
	syncdelivery "channelsync-backend/internal/sync/delivery"
	webhookdelivery "channelsync-backend/internal/webhook/delivery"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *authdelivery.AuthHandler,
	catalogHandler *catalogdelivery.CatalogHandler,
	mappingHandler *mappingdelivery.MappingHandler,
	promptHandler *promptdelivery.PromptHandler,
	syncHandler *syncdelivery.SyncHandler,
	webhookHandler *webhookdelivery.WebhookHandler,
) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authdelivery.AuthMiddleware(), authHandler.Me)
		}

		// Sync trigger: reachable by the external cron (bearer secret) and
		// by logged-in admins (manual/test runs), so no session middleware
		api.POST("/sync", syncHandler.Trigger)

		// Inbound webhook (HMAC-signed, no session)
		api.POST("/webhooks/fireflies", webhookHandler.Receive)

		// Everything below requires an admin session
		protected := api.Group("")
		protected.Use(authdelivery.AuthMiddleware())
		{
			users := protected.Group("/users")
			{
				users.GET("", authHandler.ListUsers)
				users.POST("", authHandler.CreateUser)
				users.POST("/sync-slack", authHandler.SyncSlackUsers)
				users.GET("/:id", authHandler.GetUser)
				users.PUT("/:id", authHandler.UpdateUser)
				users.DELETE("/:id", authHandler.DeleteUser)
			}

			channels := protected.Group("/slack-channels")
			{
				channels.GET("", catalogHandler.ListSlackChannels)
				channels.POST("", catalogHandler.CreateSlackChannel)
				channels.POST("/sync", catalogHandler.SyncSlackChannels)
				channels.GET("/:id", catalogHandler.GetSlackChannel)
				channels.PUT("/:id", catalogHandler.UpdateSlackChannel)
				channels.DELETE("/:id", catalogHandler.DeleteSlackChannel)
			}

			companies := protected.Group("/hubspot-companies")
			{
				companies.GET("", catalogHandler.ListHubspotCompanies)
				companies.POST("", catalogHandler.CreateHubspotCompany)
				companies.POST("/sync", catalogHandler.SyncHubspotCompanies)
				companies.GET("/:id", catalogHandler.GetHubspotCompany)
				companies.PUT("/:id", catalogHandler.UpdateHubspotCompany)
				companies.DELETE("/:id", catalogHandler.DeleteHubspotCompany)
			}

			mappings := protected.Group("/mappings")
			{
				mappings.GET("", mappingHandler.ListMappings)
				mappings.POST("", mappingHandler.CreateMapping)
				mappings.GET("/:id", mappingHandler.GetMapping)
				mappings.PUT("/:id", mappingHandler.UpdateMapping)
				mappings.DELETE("/:id", mappingHandler.DeleteMapping)
			}

			prompts := protected.Group("/prompts")
			{
				prompts.GET("", promptHandler.ListPrompts)
				prompts.POST("", promptHandler.CreatePrompt)
				prompts.GET("/active", promptHandler.GetActivePrompt)
				prompts.GET("/:id", promptHandler.GetPrompt)
				prompts.PUT("/:id", promptHandler.UpdatePrompt)
				prompts.DELETE("/:id", promptHandler.DeletePrompt)
			}

			// Audit read endpoints
			protected.GET("/cron-logs", syncHandler.ListCronLogs)
			protected.GET("/webhook-events", webhookHandler.ListEvents)
			protected.POST("/webhooks/fireflies/:id/process", webhookHandler.Process)
		}
	}
}
