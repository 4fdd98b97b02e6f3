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
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/crowdkit/crowdkit/internal/admin/errs"
	"github.com/crowdkit/crowdkit/internal/admin/model"
	httpx "github.com/crowdkit/crowdkit/pkg/http"
	"github.com/crowdkit/crowdkit/pkg/i18n"
)

func (rt *Router) dropdownRouter(r fiber.Router) {
	dropdownGroup := r.Group("/dropdowns")
	{
		dropdownGroup.Get("/types", rt.listDropdownTypes)          // GET /dropdowns/types - dropdown families
		dropdownGroup.Post("", rt.createDropdownOption)            // POST /dropdowns - create replica set
		dropdownGroup.Get("/:type", rt.listDropdownOptions)        // GET /dropdowns/:type - options of a family
		dropdownGroup.Get("/option/:id", rt.getDropdownOption)     // GET /dropdowns/option/:id - one replica
		dropdownGroup.Put("/option/:id", rt.updateDropdownOption)  // PUT /dropdowns/option/:id - update one replica
		dropdownGroup.Post("/option/:id/usage", rt.adjustDropdownUsage)
		dropdownGroup.Get("/code/:code", rt.getDropdownSet)        // GET /dropdowns/code/:code - whole replica set
		dropdownGroup.Delete("/code/:code", rt.deleteDropdownSet)  // DELETE /dropdowns/code/:code - delete replica set
	}
}

func (rt *Router) listDropdownTypes(c *fiber.Ctx) error {
	types, err := rt.Services.Dropdown.ListTypes(c.UserContext())
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, types)
}

func (rt *Router) createDropdownOption(c *fiber.Ctx) error {
	var req model.CreateDropdownReq
	if err := rt.parseBody(c, &req); err != nil {
		return rt.fail(c, err)
	}
	option, err := rt.Services.Dropdown.CreateOption(c.UserContext(), &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, option)
}

func (rt *Router) listDropdownOptions(c *fiber.Ctx) error {
	page, err := rt.Services.Dropdown.ListOptions(c.UserContext(), c.Params("type"),
		c.Query("languageId"), queryInt(c, "pageNum"), queryInt(c, "pageSize"))
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, page)
}

func (rt *Router) getDropdownOption(c *fiber.Ctx) error {
	option, err := rt.Services.Dropdown.GetOption(c.UserContext(), c.Params("id"))
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, option)
}

func (rt *Router) getDropdownSet(c *fiber.Ctx) error {
	code, err := paramCode(c)
	if err != nil {
		return rt.fail(c, err)
	}
	replicas, err := rt.Services.Dropdown.GetOptionSet(c.UserContext(), code)
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, replicas)
}

func (rt *Router) updateDropdownOption(c *fiber.Ctx) error {
	var req model.UpdateDropdownReq
	if err := rt.parseBody(c, &req); err != nil {
		return rt.fail(c, err)
	}
	option, err := rt.Services.Dropdown.UpdateOption(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, option)
}

func (rt *Router) deleteDropdownSet(c *fiber.Ctx) error {
	code, err := paramCode(c)
	if err != nil {
		return rt.fail(c, err)
	}
	deleted, err := rt.Services.Dropdown.DeleteOptionSet(c.UserContext(), code)
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{
		"deleted": deleted,
		"message": i18n.TranslateData(c, "record.deleted_count", map[string]any{"Count": deleted}),
	})
}

func (rt *Router) adjustDropdownUsage(c *fiber.Ctx) error {
	delta, err := strconv.Atoi(c.Query("delta", "1"))
	if err != nil {
		return rt.fail(c, errs.Validationf("invalid delta %q", c.Query("delta")))
	}
	if err := rt.Services.Dropdown.AdjustUseCount(c.UserContext(), c.Params("id"), delta); err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepNotDetail(c)
}
