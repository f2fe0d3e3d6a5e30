package main

import (
	"os"

	auction "sealed-auction/internal/auctionService"
	"sealed-auction/internal/clock"
	"sealed-auction/internal/config"
	"sealed-auction/internal/crypto/pedersen"
	"sealed-auction/internal/events"
	"sealed-auction/internal/repository"
	"sealed-auction/internal/server"
	"sealed-auction/utils"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		utils.Fatal("failed to load configuration", map[string]any{"error": err.Error()})
	}

	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Fatal("invalid log level", map[string]any{"error": err.Error()})
	}

	scheme, err := pedersen.New(cfg.PedersenDomain)
	if err != nil {
		utils.Fatal("failed to initialize verifier", map[string]any{"error": err.Error()})
	}

	repo := repository.NewMemoryRepo()
	feed := events.NewFeed(cfg.EventFeedSize)
	bus := events.NewBus(feed, events.LogSink{})

	auctionSvc := auction.NewAuctionService(repo, scheme, clock.System{}, bus,
		auction.WithLateRevealPolicy(cfg.Policy()))

	router := server.SetupRouter(auctionSvc, feed)

	utils.Info("starting auction server", map[string]any{
		"addr":               cfg.Addr(),
		"late_reveal_policy": cfg.LateRevealPolicy,
		"pedersen_domain":    cfg.PedersenDomain,
	})
	if err := router.Run(cfg.Addr()); err != nil {
		utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
	}
}
