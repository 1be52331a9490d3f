package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/globalvoice/esim-balance/internal/client"
	"github.com/globalvoice/esim-balance/internal/config"
	"github.com/globalvoice/esim-balance/internal/http"
	"github.com/globalvoice/esim-balance/internal/metrics"
	"github.com/globalvoice/esim-balance/internal/service"
)

func main() {
	log.Println("Starting eSIM Balance Proxy...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if !cfg.HasUsageCredentials() {
		log.Println("[main] WARNING: usage API key not set, /balance routes will answer config_error")
	}
	if !cfg.HasCatalogCredentials() {
		log.Println("[main] WARNING: catalog credentials not set, /plans-by-destination will answer config_error")
	}

	metrics.Init()

	// Initialize clients
	usageClient := client.NewUsageClient(cfg.Usage.BaseURL, cfg.Usage.APIKey, cfg.Usage.Version)
	catalogClient := client.NewCatalogClient(
		cfg.Catalog.CoverageURL,
		cfg.Catalog.PackagesURL,
		cfg.Catalog.Email,
		cfg.Catalog.Password,
	)

	// Initialize services
	balanceService := service.NewBalanceService(cfg, usageClient)
	plansService := service.NewPlansService(cfg, catalogClient)

	// Initialize HTTP server
	server := http.NewServer(cfg, balanceService, plansService)

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.Printf("Server starting on %s", addr)
		if err := server.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server exited")
}
