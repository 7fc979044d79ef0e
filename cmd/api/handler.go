package api

import (
	authdelivery "channelsync-backend/internal/auth/delivery"
	authusecase "channelsync-backend/internal/auth/usecase"
	catalogdelivery "channelsync-backend/internal/catalog/delivery"
	catalogusecase "channelsync-backend/internal/catalog/usecase"
	mappingdelivery "channelsync-backend/internal/mapping/delivery"
	mappingusecase "channelsync-backend/internal/mapping/usecase"
	promptdelivery "channelsync-backend/internal/prompt/delivery"
	promptusecase "channelsync-backend/internal/prompt/usecase"
	syncdelivery "channelsync-backend/internal/sync/delivery"
	syncusecase "channelsync-backend/internal/sync/usecase"
	webhookdelivery "channelsync-backend/internal/webhook/delivery"
	webhookusecase "channelsync-backend/internal/webhook/usecase"
	"channelsync-backend/pkg/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// Handler owns the gin engine and the route setup
type Handler struct {
	engine *gin.Engine
}

// NewHandler wires the usecases into a configured gin engine
func NewHandler(
	cfg *config.Config,
	authUsecase authusecase.AuthUsecase,
	catalogUsecase catalogusecase.CatalogUsecase,
	mappingUsecase mappingusecase.MappingUsecase,
	promptUsecase promptusecase.PromptUsecase,
	syncUsecase syncusecase.SyncUsecase,
	webhookUsecase webhookusecase.WebhookUsecase,
) *Handler {
	engine := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	})
	engine.Use(sessions.Sessions("channelsync_session", store))

	SetupRoutes(engine,
		authdelivery.NewAuthHandler(authUsecase),
		catalogdelivery.NewCatalogHandler(catalogUsecase),
		mappingdelivery.NewMappingHandler(mappingUsecase),
		promptdelivery.NewPromptHandler(promptUsecase),
		syncdelivery.NewSyncHandler(syncUsecase, cfg.CronSecret),
		webhookdelivery.NewWebhookHandler(webhookUsecase, cfg.WebhookSecret),
	)

	return &Handler{engine: engine}
}

// Start runs the HTTP server
func (h *Handler) Start(addr string) error {
	return h.engine.Run(addr)
}
