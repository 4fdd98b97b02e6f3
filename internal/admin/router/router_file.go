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

	"github.com/crowdkit/crowdkit/internal/admin/errs"
	httpx "github.com/crowdkit/crowdkit/pkg/http"
)

func (rt *Router) fileRouter(r fiber.Router) {
	fileGroup := r.Group("/files")
	{
		fileGroup.Get("/url", rt.resolveFileURL)   // GET /files/url?path= - public URL for a stored path
		fileGroup.Get("/sign", rt.signFileURL)     // GET /files/sign?path=&ttl= - time-limited download URL
	}
}

func (rt *Router) resolveFileURL(c *fiber.Ctx) error {
	storedPath := c.Query("path")
	if storedPath == "" {
		return rt.fail(c, errs.Validationf("path is required"))
	}
	return httpx.WithRepJSON(c, fiber.Map{"url": rt.Storage.FileURL(storedPath)})
}

func (rt *Router) signFileURL(c *fiber.Ctx) error {
	storedPath := c.Query("path")
	if storedPath == "" {
		return rt.fail(c, errs.Validationf("path is required"))
	}
	ttl := queryInt(c, "ttl")
	if ttl <= 0 {
		ttl = 600
	}
	url, err := rt.Store.PresignedURL(c.UserContext(), storedPath, time.Duration(ttl)*time.Second)
	if err != nil {
		return rt.fail(c, errs.Wrap(errs.KindDependency, err, "sign %s", storedPath))
	}
	return httpx.WithRepJSON(c, fiber.Map{"url": url, "ttl": ttl})
}
