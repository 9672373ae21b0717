package main

import (
	"context"
	"log"
	"time"

	"gigmatch/internal/app"
	"gigmatch/internal/config"
	"gigmatch/internal/database/seeder"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	runner := seeder.Runner{Seeders: seeder.Defaults()}
	if err := runner.Run(ctx, c.DB); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	log.Printf("seed complete")
}
