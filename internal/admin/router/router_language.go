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
	"github.com/gofiber/fiber/v2"

	"github.com/crowdkit/crowdkit/internal/admin/model"
	httpx "github.com/crowdkit/crowdkit/pkg/http"
	"github.com/crowdkit/crowdkit/pkg/i18n"
)

func (rt *Router) languageRouter(r fiber.Router) {
	languageGroup := r.Group("/languages")
	{
		languageGroup.Post("", rt.createLanguage)              // POST /languages - register language
		languageGroup.Get("", rt.listLanguages)                // GET /languages - list languages
		languageGroup.Get("/:id", rt.getLanguage)              // GET /languages/:id - get language by id
		languageGroup.Put("/:id", rt.updateLanguage)           // PUT /languages/:id - update language
		languageGroup.Put("/:id/default", rt.setDefaultLanguage) // PUT /languages/:id/default - move default flag
		languageGroup.Delete("/:id", rt.deleteLanguage)        // DELETE /languages/:id - delete language
	}
}

func (rt *Router) createLanguage(c *fiber.Ctx) error {
	var req model.CreateLanguageReq
	if err := rt.parseBody(c, &req); err != nil {
		return rt.fail(c, err)
	}
	lang, err := rt.Services.Language.CreateLanguage(c.UserContext(), &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, lang)
}

func (rt *Router) listLanguages(c *fiber.Ctx) error {
	languages, err := rt.Services.Language.ListLanguages(c.UserContext())
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, languages)
}

func (rt *Router) getLanguage(c *fiber.Ctx) error {
	lang, err := rt.Services.Language.GetLanguage(c.UserContext(), c.Params("id"))
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, lang)
}

func (rt *Router) updateLanguage(c *fiber.Ctx) error {
	var req model.UpdateLanguageReq
	if err := rt.parseBody(c, &req); err != nil {
		return rt.fail(c, err)
	}
	lang, err := rt.Services.Language.UpdateLanguage(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, lang)
}

func (rt *Router) setDefaultLanguage(c *fiber.Ctx) error {
	if err := rt.Services.Language.SetDefaultLanguage(c.UserContext(), c.Params("id")); err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) deleteLanguage(c *fiber.Ctx) error {
	if err := rt.Services.Language.DeleteLanguage(c.UserContext(), c.Params("id")); err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepMsg(c, httpx.Success.Code, i18n.Translate(c, "record.deleted"))
}
