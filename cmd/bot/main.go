package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"freelancebot/bot"
	"freelancebot/core/logger"

	"github.com/joho/godotenv"
)

const defaultConfigPath = "config.yaml"

func main() {
	// Local development keeps secrets in .env; absence is not an error.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}

	log.Printf("loading config: %s", cfgPath)
	cfg, err := bot.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := logger.Init(&cfg.Config); err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := bot.Run(ctx, cfg); err != nil {
		log.Fatalf("bot stopped with error: %v", err)
	}
}
