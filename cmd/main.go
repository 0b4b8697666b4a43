package main

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"

	"giveaway/internal/broadcast"
	"giveaway/internal/config"
	"giveaway/internal/handlers"
	"giveaway/internal/models"
	"giveaway/internal/services"
	"giveaway/internal/source"
	"giveaway/internal/store"
)

func main() {
	defer logger.Init("giveaway", true, false, io.Discard).Close()

	// 1. Load configuration from the environment (.env supported).
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Open the rule store and load the persisted rule set. Store
	// trouble degrades to in-memory defaults, it never stops the engine.
	rules := models.DefaultRuleSet()
	var ruleStore services.RuleStore
	if db, err := store.Open(cfg.DatabasePath); err != nil {
		logger.Errorf("Rule store unavailable, running in-memory only: %v", err)
	} else {
		defer db.Close()
		ruleStore = db
		if loaded, err := db.Load(); err != nil {
			logger.Errorf("Failed to load persisted rule set, using defaults: %v", err)
		} else {
			rules = loaded
		}
	}

	// 3. Wire the broadcast hub and the giveaway engine.
	hub := broadcast.NewHub()
	giveawayService := services.NewGiveawayService(rules, hub, ruleStore)

	// 4. Connect to the upstream live-event relay, if configured.
	if cfg.SourceURL != "" {
		client := source.NewClient(cfg.SourceURL, cfg.SourceOrigin, giveawayService)
		go client.Run(context.Background())
	} else {
		logger.Info("EVENT_SOURCE_URL not set; accepting events via POST /api/events only")
	}

	// 5. Set up the Gin router and register routes.
	r := gin.Default()
	httpHandler := handlers.NewHTTPHandler(giveawayService, hub)
	httpHandler.RegisterRoutes(r)

	// 6. Run the server.
	logger.Infof("Server starting on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatalf("Failed to run server: %v", err)
	}
}
