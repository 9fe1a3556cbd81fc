package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	agent "github.com/ERRORIK404/task_calculator/internal/agent_application"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := agent.RunAgent(ctx, config, log); err != nil {
		log.Error("agent died", "err", err)
		os.Exit(1)
	}
}
