// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "despot/internal/command/fun"
	_ "despot/internal/command/memory"
	_ "despot/internal/command/moderation"
	_ "despot/internal/command/permissions"
	_ "despot/internal/command/whitelist"

	"despot/internal/config"
	"despot/internal/discord"
	"despot/internal/storage"
	v "despot/internal/version"
)

func main() {
	log.Printf("[INFO] Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.New()

	var store storage.Store
	var err error
	switch cfg.StoreBackend {
	case "mongo":
		store, err = storage.NewMongoStore(cfg.MongoURI, cfg.MongoDB, cfg.WhitelistChannels)
	default:
		store, err = storage.NewFileStore(cfg.StorePath, cfg.WhitelistChannels)
	}
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	go discord.RunHealthServer(ctx, cfg.HealthAddr)

	errCh := make(chan error, 1)
	go func() {
		if err := discord.StartBot(ctx, cfg, store); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	case <-ctx.Done():
	}

	log.Println("[INFO] Discord bot exited cleanly")
}
