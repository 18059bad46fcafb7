package main

import (
	"log"

	"github.com/code-100-precent/EchoPBX/internal/commands"
	"github.com/code-100-precent/EchoPBX/pkg/config"
	"github.com/code-100-precent/EchoPBX/pkg/logger"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatalf("load config: %v", err)
	}

	cfg := config.GlobalConfig
	if err := logger.Init(&cfg.Log, cfg.Mode); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	commands.Execute()
}
