package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	app "github.com/ERRORIK404/task_calculator/internal/tasks_application"
	conf "github.com/ERRORIK404/task_calculator/pkg/config"
	"github.com/ERRORIK404/task_calculator/pkg/logger"
)

func main() {
	config, err := conf.LoadConfig()
	if err != nil {
		logger.New(os.Stderr, 0, "text").Error("config", "err", err)
		os.Exit(2)
	}
	log := logger.FromConfig(os.Stderr, config)
	log.Info("Config loaded", "http_addr", config.HTTPAddr, "dsn", config.DatabaseDSN)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunServer(ctx, config, log); err != nil {
		log.Error("task server failed", "err", err)
		os.Exit(1)
	}
}
