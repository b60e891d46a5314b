package main

import (
	"fmt"
	"os"
	"time"

	auction "share-auction/internal/auctionService"
	"share-auction/internal/config"
	"share-auction/internal/database"
	"share-auction/internal/events"
	"share-auction/internal/repository"
	"share-auction/internal/server"
	settlement "share-auction/internal/settlementService"
	"share-auction/utils"
)

func main() {

	cfg := config.Load()

	repo := buildRepository(cfg)
	publisher := buildPublisher(cfg)

	if cfg.RunNotifier && cfg.AMQPURL != "" {
		go func() {
			if err := events.StartNotifierConsumer(cfg.AMQPURL); err != nil {
				utils.Error("notifier consumer stopped", map[string]any{"error": err.Error()})
			}
		}()
	}

	auctionSvc := auction.NewAuctionService(repo, publisher)
	settlementSvc := settlement.NewSettlementService(repo, publisher)

	router := server.SetupRouter(auctionSvc, settlementSvc, time.Duration(cfg.BidWindowHours)*time.Hour)

	addr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Printf("Starting share auction server on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// buildRepository selects the persistence backend from config.
func buildRepository(cfg config.Config) repository.AuctionDB {
	if cfg.Storage == config.StorageMySQL {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			utils.Fatal("failed to connect to database", map[string]any{"error": err.Error()})
		}
		return repository.NewSQLRepo(db)
	}
	return repository.NewMemoryRepo()
}

// buildPublisher wires the broker when AMQP_URL is set and stays silent
// otherwise.
func buildPublisher(cfg config.Config) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.NopPublisher{}
	}
	return events.NewAMQPPublisher(cfg.AMQPURL)
}
