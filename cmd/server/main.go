package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/ucampus/campus-events-api/internal/auth"
	"github.com/ucampus/campus-events-api/internal/authz"
	"github.com/ucampus/campus-events-api/internal/config"
	"github.com/ucampus/campus-events-api/internal/database"
	"github.com/ucampus/campus-events-api/internal/handlers"
	"github.com/ucampus/campus-events-api/internal/logging"
	"github.com/ucampus/campus-events-api/internal/notifier"
	"github.com/ucampus/campus-events-api/internal/orders"
	"github.com/ucampus/campus-events-api/internal/workflow"
)

func main() {
	cfg := config.LoadConfig()
	logger := logging.New()

	db := database.Connect(cfg)

	// Notification channels are optional; whatever is configured gets
	// fanned out to.
	var channels notifier.Multi
	if cfg.DiscordBotToken != "" && cfg.DiscordStaffChannelID != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			logger.Warn("discord notifier not initialized", "error", err)
		} else {
			channels = append(channels, notifier.NewDiscordNotifier(session, cfg.DiscordStaffChannelID))
		}
	}
	if cfg.SendgridKey != "" && cfg.SendgridFromEmail != "" {
		channels = append(channels, notifier.NewEmailNotifier(cfg.SendgridKey, cfg.AppName, cfg.SendgridFromEmail))
	}
	var n notifier.Notifier
	if len(channels) > 0 {
		n = channels
	}

	authzService := authz.NewService(db)
	workflowService := workflow.NewService(db, authzService, n, logger)
	generator := orders.NewGenerator(cfg.OrdersDir, cfg.AppName)
	authHandler := auth.NewAuthHandler(cfg, db)

	r := chi.NewRouter()
	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:         authHandler,
		Users:        handlers.NewUserHandler(db, authHandler),
		Events:       handlers.NewEventHandler(db, authHandler),
		Registration: handlers.NewRegistrationHandler(db, workflowService, generator, authHandler),
		Payments:     handlers.NewPaymentHandler(db, workflowService, generator, authHandler),
		Documents:    handlers.NewDocumentHandler(db, workflowService, authHandler),
		Validation:   handlers.NewValidationHandler(workflowService, authHandler),
		Materials:    handlers.NewMaterialHandler(db, authzService, authHandler),
		Grades:       handlers.NewGradeHandler(db, authzService, authHandler),
		APIKeys:      handlers.NewAPIKeyHandler(db, authHandler),
	})

	logger.Info("starting server", "port", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
