package main

import (
	"context"
	"log"

	"alfredweb/src/internal/domain"
	"alfredweb/src/internal/service"
	"alfredweb/src/internal/service/config"
)

var Version = "1.0.0"

func main() {
	cfg, err := config.Load(config.DefaultSources())
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	cfg.Version = Version

	// Initialize Context
	ctx := &domain.Context{
		Config: cfg,
	}

	// Create and Run Orchestrator
	orchestrator := service.CreateOrchestrator(ctx)
	if err := orchestrator.Run(context.Background()); err != nil {
		log.Fatalf("Error running orchestrator: %v", err)
	}
}
