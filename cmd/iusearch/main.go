package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"iusearch/application/auth"
	"iusearch/application/navigation"
	"iusearch/application/search"
	"iusearch/cmd/config"
	redisclient "iusearch/cmd/redis"
	"iusearch/gateway"
	"iusearch/repository/credential"
	"iusearch/utils/logger"
	validatorx "iusearch/utils/validator"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	validatorx.Init()

	logger.Info("Starting client", zap.String("env", cfg.Environment), zap.String("base_url", cfg.BaseURL()))

	store, err := buildStore(cfg)
	if err != nil {
		logger.Fatal("err building credential store", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	gw := gateway.NewClient(cfg.BaseURL(), store)
	authApp := auth.NewAuthApp(store, gw)
	searchApp := search.NewSearchApp(gw)
	nav := navigation.NewController(authApp)

	a := newApp(authApp, searchApp, nav, os.Stdin, os.Stdout)
	if err := a.Run(context.Background()); err != nil {
		logger.Fatal("client exited", zap.Error(err))
	}
}

func buildStore(cfg *config.Config) (credential.Store, error) {
	switch cfg.Store.Backend {
	case "redis":
		if err := redisclient.New(cfg); err != nil {
			return nil, err
		}
		return credential.NewRedisStore(redisclient.Get()), nil
	case "memory":
		return credential.NewMemoryStore(), nil
	default:
		return credential.NewFileStore(cfg.Store.FilePath, cfg.Store.Passphrase), nil
	}
}
