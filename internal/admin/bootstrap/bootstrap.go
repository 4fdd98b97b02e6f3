// Copyright 2025 CrowdKit Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bootstrap assembles the process: configuration, logger, storage
// backends, cache, and the HTTP application, plus the signal-driven
// shutdown sequence.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crowdkit/crowdkit/internal/admin/repo"
	"github.com/crowdkit/crowdkit/internal/admin/router"
	"github.com/crowdkit/crowdkit/pkg/cache"
	"github.com/crowdkit/crowdkit/pkg/conf"
	"github.com/crowdkit/crowdkit/pkg/ctx"
	"github.com/crowdkit/crowdkit/pkg/database"
	httpx "github.com/crowdkit/crowdkit/pkg/http"
	"github.com/crowdkit/crowdkit/pkg/i18n"
	"github.com/crowdkit/crowdkit/pkg/log"
	"github.com/crowdkit/crowdkit/pkg/safe"
	"github.com/crowdkit/crowdkit/pkg/shutdown"
	"github.com/crowdkit/crowdkit/pkg/storage"
	"github.com/crowdkit/crowdkit/pkg/upload"
)

// CacheConfig selects the cache flavor: a shared Redis or a per-process
// fastcache instance for single-node deployments.
type CacheConfig struct {
	Provider string                `mapstructure:"provider"` // redis | local
	Redis    cache.Redis           `mapstructure:"redis"`
	Local    cache.FastCacheConfig `mapstructure:"local"`
}

// AppConfig is the whole configuration tree, loaded from conf.d.
type AppConfig struct {
	Log      log.Conf          `mapstructure:"log"`
	Http     httpx.Http        `mapstructure:"http"`
	Database database.Database `mapstructure:"database"`
	Cache    CacheConfig       `mapstructure:"cache"`
	Storage  storage.Storage   `mapstructure:"storage"`
	Upload   upload.Limits     `mapstructure:"upload"`
	I18n     i18n.Conf         `mapstructure:"i18n"`
}

// App is the assembled application.
type App struct {
	HttpApp  *fiber.App
	AppCtx   *ctx.Context
	AppConf  *AppConfig
	Shutdown *shutdown.Manager
}

// InitAppFunc is the wire-generated injector signature.
type InitAppFunc func(appConf *AppConfig, mgr database.Manager, c cache.ICache,
	storageConf *storage.Storage, store storage.Provider) (*App, func(), error)

// NewApp builds the App from its wired parts.
func NewApp(rt *router.Router, appConf *AppConfig, mgr database.Manager) (*App, func(), error) {
	appCtx := ctx.NewContext(context.Background(), mongoDatabase(mgr), mgr.MySQL(), log.GetLogger())

	app := &App{
		HttpApp:  rt.App(),
		AppCtx:   appCtx,
		AppConf:  appConf,
		Shutdown: shutdown.NewManager(),
	}
	return app, func() {}, nil
}

// Bootstrap loads configuration, opens the configured backends, and hands
// them to the wire-generated injector.
func Bootstrap(confDir string, initApp InitAppFunc) (*App, func(), error) {
	appConf := &AppConfig{}
	if _, err := conf.LoadConfigFile(confDir, appConf); err != nil {
		return nil, nil, err
	}

	log.MustInit(&appConf.Log)

	mgr, err := database.NewManager(appConf.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := installSchema(mgr); err != nil {
		mgr.Close()
		return nil, nil, err
	}

	c, closeCache, err := newCache(appConf.Cache)
	if err != nil {
		mgr.Close()
		return nil, nil, err
	}

	store, err := storage.NewStorage(&appConf.Storage)
	if err != nil {
		closeCache()
		mgr.Close()
		return nil, nil, err
	}

	app, cleanup, err := initApp(appConf, mgr, c, &appConf.Storage, store)
	if err != nil {
		closeCache()
		mgr.Close()
		return nil, nil, err
	}

	combined := func() {
		cleanup()
		closeCache()
		if err := mgr.Close(); err != nil {
			log.Warnw("database close failed", "error", err)
		}
	}
	return app, combined, nil
}

// Run starts the HTTP listener and blocks until a termination signal, then
// drains connections within the configured shutdown timeout.
func Run(app *App, cleanup func()) {
	appCtx := app.AppCtx

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	addr := fmt.Sprintf("%s:%d", app.AppConf.Http.Host, app.AppConf.Http.Port)
	safe.Go(func() {
		appCtx.Log.Infow("http listener started", "address", addr)
		if err := app.HttpApp.Listen(addr); err != nil {
			appCtx.Log.Errorw("http listener stopped", "error", err)
			app.Shutdown.Shutdown()
		}
	})

	select {
	case sig := <-quit:
		appCtx.Log.Infow("termination signal received", "signal", sig.String())
	case <-app.Shutdown.Wait():
		appCtx.Log.Warnw("internal shutdown requested")
	}

	timeout := time.Duration(app.AppConf.Http.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if err := app.HttpApp.ShutdownWithTimeout(timeout); err != nil {
		appCtx.Log.Errorw("http shutdown failed", "error", err)
	}
	cleanup()
	appCtx.Log.Infow("bye")
}

// installSchema provisions whichever backend is configured: relational
// migration with gorm, or unique-index creation for mongo.
func installSchema(mgr database.Manager) error {
	if mgr.Backend() == database.BackendMongo {
		installCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return repo.EnsureMongoIndexes(installCtx, mgr.Mongo().DB)
	}
	return repo.AutoMigrate(mgr.MySQL())
}

func newCache(cfg CacheConfig) (cache.ICache, func(), error) {
	if cfg.Provider == "local" {
		fc := cache.NewFastCache(cfg.Local)
		return fc, fc.Close, nil
	}
	client, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewRedisCache(client), func() { _ = client.Close() }, nil
}

func mongoDatabase(mgr database.Manager) *mongo.Database {
	if mgr.Backend() == database.BackendMongo {
		return mgr.Mongo().DB
	}
	return nil
}
