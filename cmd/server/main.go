package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"go-linkedin-fetcher/internal/api"
	"go-linkedin-fetcher/internal/app"
	"go-linkedin-fetcher/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	//the server keeps one logged-in page and serialises searches on it
	cfg.Browser.Headless = true
	a, err := app.New(ctx, cfg, app.Options{SaveJSON: true})
	if err != nil {
		log.Fatalf("❌ Failed to start: %v", err)
	}
	defer a.Close()

	var store api.RunStore
	if a.Repo != nil {
		store = a.Repo
	}
	r := api.NewRouter(a.Service, store)

	log.Printf("Server listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Printf("❌ Failed to start server: %v", err)
	}
}
