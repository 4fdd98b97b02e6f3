//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/crowdkit/crowdkit/internal/admin/bootstrap"
	"github.com/crowdkit/crowdkit/internal/admin/logic"
	"github.com/crowdkit/crowdkit/internal/admin/repo"
	"github.com/crowdkit/crowdkit/internal/admin/router"
	"github.com/crowdkit/crowdkit/pkg/cache"
	"github.com/crowdkit/crowdkit/pkg/database"
	httpx "github.com/crowdkit/crowdkit/pkg/http"
	"github.com/crowdkit/crowdkit/pkg/i18n"
	"github.com/crowdkit/crowdkit/pkg/storage"
	"github.com/crowdkit/crowdkit/pkg/upload"
)

func initApp(appConf *bootstrap.AppConfig, mgr database.Manager, c cache.ICache,
	storageConf *storage.Storage, store storage.Provider) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// 配置层
		confProviderSet,
		// 仓储层
		repo.ProviderSet,
		// 业务层
		logic.ProviderSet,
		// 路由层
		router.ProviderSet,
		// 应用层
		bootstrap.NewApp,
	))
}

// confProviderSet 配置层 ProviderSet
var confProviderSet = wire.NewSet(
	provideHttpConfig,
	provideI18nConfig,
	provideUploadLimits,
)

func provideHttpConfig(appConf *bootstrap.AppConfig) *httpx.Http {
	return &appConf.Http
}

func provideI18nConfig(appConf *bootstrap.AppConfig) i18n.Conf {
	return appConf.I18n
}

func provideUploadLimits(appConf *bootstrap.AppConfig) upload.Limits {
	return appConf.Upload
}
