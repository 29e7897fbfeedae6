// Command seed loads first-run demo content into the local cache.
package main

import (
	"log"
	"log/slog"

	"gatherly/internal/bootstrap"
	"gatherly/internal/config"
	"gatherly/internal/models"
	"gatherly/internal/seed"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rt, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	defer rt.Close()

	if err := seed.MockData(rt.Store.DB()); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	var events, chats, messages int64
	rt.Store.DB().Model(&models.Event{}).Count(&events)
	rt.Store.DB().Model(&models.Chat{}).Count(&chats)
	rt.Store.DB().Model(&models.Message{}).Count(&messages)
	rt.Log.Info("demo data ready",
		slog.Int64("events", events),
		slog.Int64("chats", chats),
		slog.Int64("messages", messages),
	)
}
