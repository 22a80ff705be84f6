package main

import (
	"context"
	"fmt"

	"rideshare/config"
	"rideshare/pkg/logger"
	"rideshare/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	pg, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		panic(err)
	}
	defer pg.Close()

	store, ok := pg.(*postgres.Store)
	if !ok {
		panic("unexpected storage implementation")
	}

	// Trips reference drivers, so CASCADE cleans both directions.
	_, err = store.Pool().Exec(context.Background(), "TRUNCATE TABLE passengers, drivers, trips CASCADE")
	if err != nil {
		log.Error(fmt.Sprintf("Failed to truncate tables: %v", err))
	} else {
		log.Info("Successfully truncated passengers, drivers, and trips tables.")
	}
}
