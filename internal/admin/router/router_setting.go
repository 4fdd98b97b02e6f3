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
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"github.com/crowdkit/crowdkit/internal/admin/consts"
	"github.com/crowdkit/crowdkit/internal/admin/errs"
	httpx "github.com/crowdkit/crowdkit/pkg/http"
	"github.com/crowdkit/crowdkit/pkg/i18n"
	"github.com/crowdkit/crowdkit/pkg/upload"
)

func (rt *Router) settingRouter(r fiber.Router) {
	settingGroup := r.Group("/settings/:groupType")
	{
		settingGroup.Get("", rt.getSettingsAdmin)         // GET /settings/:groupType - admin scope
		settingGroup.Get("/front", rt.getSettingsFront)   // GET /settings/:groupType/front - public scope
		settingGroup.Get("/admin", rt.getSettingsAdmin)   // GET /settings/:groupType/admin - admin scope
		settingGroup.Get("/key/:key", rt.getSettingKey)   // GET /settings/:groupType/key/:key - one setting
		settingGroup.Post("", rt.upsertSettings)          // POST /settings/:groupType - upsert fields and files
		settingGroup.Delete("", rt.deleteSettingGroup)    // DELETE /settings/:groupType - drop whole group
		settingGroup.Delete("/key/:key", rt.deleteSettingKey)
	}
}

func (rt *Router) getSettingsFront(c *fiber.Ctx) error {
	return rt.getSettings(c, consts.VisibilityPublic)
}

func (rt *Router) getSettingsAdmin(c *fiber.Ctx) error {
	return rt.getSettings(c, consts.VisibilityAdmin)
}

func (rt *Router) getSettings(c *fiber.Ctx, visibility string) error {
	settings, err := rt.Services.Setting.GetGroup(c.UserContext(), c.Params("groupType"), visibility)
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, settings)
}

func (rt *Router) getSettingKey(c *fiber.Ctx) error {
	visibility := consts.VisibilityAdmin
	if c.Query("scope") == "front" {
		visibility = consts.VisibilityPublic
	}
	setting, err := rt.Services.Setting.GetKey(c.UserContext(), c.Params("groupType"), c.Params("key"), visibility)
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, setting)
}

// upsertSettings writes a batch of settings into one group. Text fields come
// from the multipart form values or a flat JSON object; binary parts become
// file-valued settings keyed by their field name.
func (rt *Router) upsertSettings(c *fiber.Ctx) error {
	fields, files, err := rt.settingsPayload(c)
	if err != nil {
		return rt.fail(c, err)
	}
	if len(fields) == 0 && len(files) == 0 {
		return rt.fail(c, errs.Validationf("no settings in request"))
	}
	isPublic := c.Query("visibility", "front") != "admin"
	written, err := rt.Services.Setting.Upsert(c.UserContext(), c.Params("groupType"), isPublic, fields, files)
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, written)
}

func (rt *Router) deleteSettingKey(c *fiber.Ctx) error {
	if err := rt.Services.Setting.DeleteKey(c.UserContext(), c.Params("groupType"), c.Params("key")); err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepMsg(c, httpx.Success.Code, i18n.Translate(c, "record.deleted"))
}

func (rt *Router) deleteSettingGroup(c *fiber.Ctx) error {
	deleted, err := rt.Services.Setting.DeleteGroup(c.UserContext(), c.Params("groupType"))
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"deleted": deleted})
}

func (rt *Router) settingsPayload(c *fiber.Ctx) (map[string]string, []upload.File, error) {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		fields := make(map[string]string, len(form.Value))
		for key, values := range form.Value {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}
		files, err := upload.FromMultipart(form, rt.Upload)
		if err != nil {
			return nil, nil, err
		}
		return fields, files, nil
	}

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		fields := map[string]string{}
		if err := sonic.Unmarshal(c.Body(), &fields); err != nil {
			return nil, nil, errs.Wrap(errs.KindValidation, err, "settings body must be a flat string object")
		}
		return fields, nil, nil
	}
	return nil, nil, errs.Validationf("unsupported settings payload")
}
