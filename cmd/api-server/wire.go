//go:build wireinject
// +build wireinject

package main

import (
	"Social/config"
	"Social/dao"
	"Social/dao/cache"
	"Social/handler"
	"Social/pkg/client"
	"Social/pkg/database"
	"Social/pkg/mq"
	"Social/pkg/oss"
	"Social/pkg/server"
	"Social/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(
		config.ProvideJwtConfig,
		config.ProvideCacheConfig,
		config.ProvideMQConfig,
		config.ProvideOssConfig,

		database.NewDB,
		client.NewRedisClient,
		mq.ProvidePublisher,
		oss.NewUploader,
		server.NewGinEngine,

		cache.ProviderSet,
		dao.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.User), "*"),
		wire.Struct(new(handler.Post), "*"),
		wire.Struct(new(handler.Comment), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),
	)
	return nil
}
