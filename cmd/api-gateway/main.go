package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/config"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/gateway"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/logger"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/service"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "api-gateway")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	gw, err := gateway.New(map[string]string{
		"/api/patients":        cfg.Gateway.PatientURL,
		"/api/appointments":    cfg.Gateway.AppointmentURL,
		"/api/medical-records": cfg.Gateway.MedicalRecordURL,
	}, log)
	if err != nil {
		log.Fatal("invalid gateway configuration", zap.Error(err))
	}

	srv := service.NewServer(cfg.HTTP.Addr, gw, log)

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
}
