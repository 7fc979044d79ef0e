package main

import (
	"log"

	api "channelsync-backend/cmd/api"
	authdomain "channelsync-backend/internal/auth/domain"
	authRepo "channelsync-backend/internal/auth/repository"
	authUsecase "channelsync-backend/internal/auth/usecase"
	catalogdomain "channelsync-backend/internal/catalog/domain"
	catalogRepo "channelsync-backend/internal/catalog/repository"
	catalogUsecase "channelsync-backend/internal/catalog/usecase"
	mappingdomain "channelsync-backend/internal/mapping/domain"
	mappingRepo "channelsync-backend/internal/mapping/repository"
	mappingUsecase "channelsync-backend/internal/mapping/usecase"
	promptdomain "channelsync-backend/internal/prompt/domain"
	promptRepo "channelsync-backend/internal/prompt/repository"
	promptUsecase "channelsync-backend/internal/prompt/usecase"
	syncdomain "channelsync-backend/internal/sync/domain"
	syncRepo "channelsync-backend/internal/sync/repository"
	"channelsync-backend/internal/sync/scheduler"
	syncUsecase "channelsync-backend/internal/sync/usecase"
	webhookdomain "channelsync-backend/internal/webhook/domain"
	webhookRepo "channelsync-backend/internal/webhook/repository"
	webhookUsecase "channelsync-backend/internal/webhook/usecase"
	"channelsync-backend/pkg/ai"
	"channelsync-backend/pkg/config"
	"channelsync-backend/pkg/database"
	"channelsync-backend/pkg/fireflies"
	"channelsync-backend/pkg/hubspot"
	"channelsync-backend/pkg/slackapi"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&catalogdomain.SlackChannel{},
		&catalogdomain.HubspotCompany{},
		&mappingdomain.Mapping{},
		&mappingdomain.MappingSlackChannel{},
		&promptdomain.Prompt{},
		&syncdomain.CronLog{},
		&syncdomain.CronLogMapping{},
		&webhookdomain.FireHookLog{},
		&webhookdomain.MeetingNote{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	channelRepository := catalogRepo.NewSlackChannelRepository(db)
	companyRepository := catalogRepo.NewHubspotCompanyRepository(db)
	mappingRepository := mappingRepo.NewMappingRepository(db)
	promptRepository := promptRepo.NewPromptRepository(db)
	cronLogRepository := syncRepo.NewCronLogRepository(db)
	webhookRepository := webhookRepo.NewWebhookRepository(db)

	// Initialize external service clients. Each one is optional: a missing
	// token leaves the matching features disabled instead of crashing.
	var slackService *slackapi.Service
	if cfg.SlackBotToken != "" {
		slackService = slackapi.NewService(cfg.SlackBotToken)
	} else {
		log.Printf("[WARN] SLACK_BOT_TOKEN not set, Slack features disabled")
	}

	var hubspotClient *hubspot.Client
	if cfg.HubspotToken != "" {
		hubspotClient = hubspot.NewClient(cfg.HubspotToken)
	} else {
		log.Printf("[WARN] HUBSPOT_ACCESS_TOKEN not set, HubSpot features disabled")
	}

	var summarizer ai.Summarizer
	if cfg.GeminiAPIKey != "" {
		summarizer = ai.NewGeminiService(cfg.GeminiAPIKey)
	} else {
		log.Printf("[WARN] GEMINI_API_KEY not set, AI summaries disabled")
	}

	var firefliesClient *fireflies.Client
	if cfg.FirefliesKey != "" {
		firefliesClient = fireflies.NewClient(cfg.FirefliesKey)
	} else {
		log.Printf("[WARN] FIREFLIES_API_KEY not set, transcript lookups disabled")
	}

	// Typed-nil pointers must not leak into interface fields, so the
	// interface variables only get assigned when the client exists.
	var slackDirectory authUsecase.SlackDirectory
	var channelLister catalogUsecase.SlackChannelLister
	var messageFetcher syncUsecase.MessageFetcher
	if slackService != nil {
		slackDirectory = slackService
		channelLister = slackService
		messageFetcher = slackService
	}
	var companyLister catalogUsecase.CompanyLister
	var noteCreator syncUsecase.NoteCreator
	var companyNoteCreator webhookUsecase.CompanyNoteCreator
	if hubspotClient != nil {
		companyLister = hubspotClient
		noteCreator = hubspotClient
		companyNoteCreator = hubspotClient
	}
	var transcriptFetcher webhookUsecase.TranscriptFetcher
	if firefliesClient != nil {
		transcriptFetcher = firefliesClient
	}

	// Initialize usecases
	authUC := authUsecase.NewAuthUsecase(userRepository, slackDirectory)
	catalogUC := catalogUsecase.NewCatalogUsecase(channelRepository, companyRepository, channelLister, companyLister)
	mappingUC := mappingUsecase.NewMappingUsecase(mappingRepository, channelRepository, companyRepository)
	promptUC := promptUsecase.NewPromptUsecase(promptRepository)

	orchestrator := syncUsecase.NewOrchestrator(messageFetcher, noteCreator, summarizer)
	recorder := syncUsecase.NewRunRecorder(cronLogRepository)
	syncUC := syncUsecase.NewSyncUsecase(orchestrator, recorder, mappingRepository, promptRepository, userRepository, cronLogRepository)

	webhookUC := webhookUsecase.NewWebhookUsecase(webhookRepository, transcriptFetcher, companyNoteCreator)

	// Start the in-process scheduler when enabled; the external cron hitting
	// POST /api/sync remains the primary trigger either way.
	if cfg.SyncScheduleEnabled {
		syncScheduler := scheduler.NewSyncScheduler(syncUC, cfg.SyncScheduleAt)
		syncScheduler.Start()
		defer syncScheduler.Stop()
	}

	// Initialize HTTP handler and start the server
	handler := api.NewHandler(cfg, authUC, catalogUC, mappingUC, promptUC, syncUC, webhookUC)

	log.Printf("[Server] Listening on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
