package main

import (
	"log"
)

func main() {
	cfg := LoadConfig()

	notified := NewMemoryNotifiedStore()
	if cfg.NotifiedDBPath != "" {
		store, err := OpenNotifiedDB(cfg.NotifiedDBPath)
		if err != nil {
			log.Fatalf("Failed to open notified store: %v", err)
		}
		defer store.Close()
		notified = store
		log.Printf("Using persistent notified store at %s", cfg.NotifiedDBPath)
	}

	clickup := NewClickUpClient(cfg)
	discord := NewDiscordWebhook(cfg)
	mirror := NewSlackMirror(cfg)
	svc := NewLeaveService(cfg, clickup, discord, mirror, notified)

	StartScheduler(cfg, svc)

	log.Printf("Starting Leave Bot on %s (timezone %s)...", cfg.ListenAddr, cfg.Timezone)
	router := NewRouter(cfg, svc, clickup)
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}
