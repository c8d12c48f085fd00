package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/sentnet/internal/adapter/api"
	adapterrepo "github.com/eslsoft/sentnet/internal/adapter/repository"
	"github.com/eslsoft/sentnet/internal/infrastructure/config"
	"github.com/eslsoft/sentnet/internal/usecase"
)

// Container aggregates the application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Session usecase.SessionUsecase
	History usecase.HistoryUsecase
}

// Initialize builds the application container. The returned cleanup function
// closes the history store.
func Initialize() (*Container, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := NewLogger(cfg)

	client := api.NewClient(cfg.API.BaseURL, logger)

	historyRepo, err := adapterrepo.Open(cfg.Storage.Driver, cfg.Storage.DSN, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := historyRepo.Close(); err != nil {
			logger.Warnf("close history store: %v", err)
		}
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Session: usecase.NewSessionUsecase(client, historyRepo, logger),
		History: usecase.NewHistoryUsecase(historyRepo),
	}
	return c, cleanup, nil
}

// NewLogger builds the application logger from config.
func NewLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	lvl, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
