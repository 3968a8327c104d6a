package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	migrate "github.com/rubenv/sql-migrate"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/schooldesk/classcal/internal/rest"
	"github.com/schooldesk/classcal/pkg/logger"
	"github.com/schooldesk/classcal/pkg/pgstore"
)

const version = "0.0.1"

var (
	address = lookupEnv("ADDRESS", ":8080")
	secret  = lookupEnv("JWT_SECRET", "classcal-dev-secret")
	pgDSN   = os.Getenv("PG_DSN")
)

func main() {
	log := logger.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var app rest.App
	if pgDSN != "" {
		store, err := pgstore.NewStore(ctx, log, pgDSN)
		if err != nil {
			log.Panic(err)
		}
		if err = store.Migrate(migrate.Up); err != nil {
			log.Panic(err)
		}
		app = store
	} else {
		log.Info("PG_DSN not set, serving events from memory")
		app = rest.NewMemStore(log)
	}

	server := rest.NewServer(log, app, address, version, []byte(secret))
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
		<-sigCh
		log.Info("Received signal, shutting down...")
		cancel()
	}()
	if err := server.Run(ctx); err != nil {
		log.Panic(err)
	}
	log.Info("Server stopped")
}

func lookupEnv(key, defaultValue string) string {
	result := os.Getenv(key)
	if result == "" {
		return defaultValue
	}
	return result
}
