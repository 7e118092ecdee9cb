package main

import (
	"Social/config"
	"Social/pkg/database"
	"Social/pkg/log"
	"Social/pkg/server"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	// .env 可选, 不存在时直接读环境变量
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	path := fmt.Sprintf("configs/config.%s.yaml", env)
	cfg := config.New(path)
	log.SetDebug(cfg.Debug())

	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "social network api",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					appProvider := InitServer(cfg)
					return server.Run(ctx, appProvider)
				},
			},
			{
				Name:  "migrate",
				Usage: "create tables and unique indexes",
				Action: func(ctx *cli.Context) error {
					db := database.NewDB(cfg)
					if err := database.Migrate(db); err != nil {
						return err
					}
					log.L.Info("migrate success", zap.String("driver", cfg.Database.Driver))
					return nil
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to start server", zap.Error(err))
	}
}
