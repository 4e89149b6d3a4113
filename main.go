package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/bootstrap"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/config"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	go func() { <-quit; cancel() }()

	log := logger.NewLogger("dispatch-service")
	bootstrap.Run(ctx, cfg, log)
}
