package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/config"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/database"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/httpapi"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/logger"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/repository"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/service"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "patient-service")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	var db *sql.DB
	var patientsRepo repository.PatientsRepository
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			if err := database.EnsureSchema(d); err != nil {
				log.Fatal("schema bootstrap failed", zap.Error(err))
			}
			db = d
			patientsRepo = repository.NewPostgresPatientsRepository(db)
			log.Info("using postgres patients repository")
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory repository", zap.Error(err))
		}
	}
	if patientsRepo == nil {
		patientsRepo = repository.NewMemoryPatientsRepository()
	}

	router := httpapi.NewRouter(log)
	router.RegisterPatientRoutes(httpapi.NewPatientHandler(patientsRepo, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)
	run(srv, log, db)
}

func run(srv *service.Server, log *zap.Logger, db *sql.DB) {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server stopped", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Stop(shutdownCtx)
	_ = database.Close(db)
}
