package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"rideshare/config"
	"rideshare/pkg/bot"
	"rideshare/pkg/logger"
	"rideshare/service"
	"rideshare/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	pgStore, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("Failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pgStore.Close()

	svc := service.New(pgStore, cfg, log)

	tgBot, err := bot.New(&cfg, svc, log)
	if err != nil {
		log.Error("Failed to initialize bot", logger.Error(err))
		os.Exit(1)
	}

	go tgBot.Start()

	log.Info("🚀 Ride-sharing backend is running.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("Shutting down...")
}
