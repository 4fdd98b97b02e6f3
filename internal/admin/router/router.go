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

package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crowdkit/crowdkit/internal/admin/logic"
	httpx "github.com/crowdkit/crowdkit/pkg/http"
	"github.com/crowdkit/crowdkit/pkg/i18n"
	"github.com/crowdkit/crowdkit/pkg/storage"
	"github.com/crowdkit/crowdkit/pkg/upload"
)

type Router struct {
	Http     *httpx.Http
	I18n     i18n.Conf
	Upload   upload.Limits
	Storage  *storage.Storage
	Store    storage.Provider
	Services *logic.Services
}

func NewRouter(httpConf *httpx.Http, i18nConf i18n.Conf, limits upload.Limits,
	storageConf *storage.Storage, store storage.Provider, services *logic.Services) *Router {
	return &Router{
		Http:     httpConf,
		I18n:     i18nConf,
		Upload:   limits,
		Storage:  storageConf,
		Store:    store,
		Services: services,
	}
}

func (rt *Router) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "crowdkit-admin",
		BodyLimit:    rt.Http.BodyLimit,
		ReadTimeout:  time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(rt.Http.IdleTimeout) * time.Second,
	})

	// panic recover
	app.Use(recover.New())

	// cors interceptor
	app.Use(cors.New())

	if rt.Http.AccessLog {
		app.Use(logger.New())
	}

	// request-language negotiation for user-facing messages
	app.Use(i18n.Middleware(rt.I18n))

	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := app.Group(rt.Http.ContextPath)
	rt.languageRouter(api)
	rt.sliderRouter(api)
	rt.dropdownRouter(api)
	rt.settingRouter(api)
	rt.fileRouter(api)

	return app
}
