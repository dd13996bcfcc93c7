package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/config"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/database"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/httpapi"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/logger"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/repository"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/resilience"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/service"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "medical-record-service")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	var db *sql.DB
	var recordsRepo repository.MedicalRecordsRepository
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			if err := database.EnsureSchema(d); err != nil {
				log.Fatal("schema bootstrap failed", zap.Error(err))
			}
			db = d
			recordsRepo = repository.NewPostgresMedicalRecordsRepository(db)
			log.Info("using postgres medical records repository")
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory repository", zap.Error(err))
		}
	}
	if recordsRepo == nil {
		recordsRepo = repository.NewMemoryMedicalRecordsRepository()
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	kv := store.NewRedisKV(redisClient)

	dep := cfg.PatientDependency
	validator := service.NewDependencyValidator(
		"patient-service",
		service.NewPatientClient(dep.BaseURL, dep.Timeout, log),
		resilience.NewBreaker("patient-service", dep.FailureThreshold, dep.OpenTimeout, log),
		resilience.RetryPolicy{
			MaxAttempts: dep.RetryMaxAttempts,
			Wait:        dep.RetryWait,
			MaxWait:     dep.RetryMaxWait,
		},
		kv,
		dep.ExistsCacheTTL,
		log,
	)

	router := httpapi.NewRouter(log)
	router.RegisterMedicalRecordRoutes(httpapi.NewMedicalRecordHandler(recordsRepo, validator, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

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
	_ = redisClient.Close()
	_ = database.Close(db)
}
