package main

import (
	"context"
	"fmt"
	"log"

	"github.com/prastianhdd/task-manager/core/bootstrap"
	corecmd "github.com/prastianhdd/task-manager/core/cmd"
	"github.com/prastianhdd/task-manager/internal/bot"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return bot.LoadConfig(path)
		},
		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg, ok := carrier.(*bot.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", carrier)
			}

			res, err := bootstrap.Run(bootstrap.Options{
				Config:   cfg.CoreConfig(),
				Database: cfg.Database,
			})
			if err != nil {
				return nil, err
			}

			app := bot.New(cfg, res.DB)
			if err := bootstrap.RunSeeders(context.Background(), app.Store()); err != nil {
				_ = res.DB.Close()
				return nil, err
			}
			return app, nil
		},
	})
	if err != nil {
		log.Fatalf("bot: %v", err)
	}
}
