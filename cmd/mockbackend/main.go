package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"iusearch/cmd/config"
	"iusearch/mockbackend"
	"iusearch/utils/logger"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	handler := mockbackend.NewHandler(cfg.Mock.JWTSecret)

	server := &http.Server{
		Addr:         ":" + cfg.Mock.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Mock backend running", zap.String("port", cfg.Mock.Port))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
