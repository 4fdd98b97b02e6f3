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
	"github.com/crowdkit/crowdkit/pkg/upload"
)

func (rt *Router) sliderRouter(r fiber.Router) {
	sliderGroup := r.Group("/sliders")
	{
		sliderGroup.Post("", rt.createSlider)                  // POST /sliders - create replica set
		sliderGroup.Get("", rt.listSliders)                    // GET /sliders - list sliders
		sliderGroup.Get("/:id", rt.getSlider)                  // GET /sliders/:id - get one replica
		sliderGroup.Put("/:id", rt.updateSlider)               // PUT /sliders/:id - update one replica
		sliderGroup.Post("/:id/usage", rt.adjustSliderUsage)   // POST /sliders/:id/usage - move use counter
		sliderGroup.Get("/code/:code", rt.getSliderSet)        // GET /sliders/code/:code - whole replica set
		sliderGroup.Delete("/code/:code", rt.deleteSliderSet)  // DELETE /sliders/code/:code - delete replica set
	}
}

// createSlider accepts a multipart form carrying the slider fields plus an
// optional image, replicated per language.
func (rt *Router) createSlider(c *fiber.Ctx) error {
	var req model.CreateSliderReq
	if err := rt.parseBody(c, &req); err != nil {
		return rt.fail(c, err)
	}
	image, err := rt.sliderImage(c)
	if err != nil {
		return rt.fail(c, err)
	}
	slider, err := rt.Services.Slider.CreateSlider(c.UserContext(), &req, image)
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, rt.sliderView(slider))
}

func (rt *Router) listSliders(c *fiber.Ctx) error {
	page, err := rt.Services.Slider.ListSliders(c.UserContext(),
		c.Query("languageId"), queryInt(c, "pageNum"), queryInt(c, "pageSize"))
	if err != nil {
		return rt.fail(c, err)
	}
	views := make([]fiber.Map, 0, len(page.Items))
	for _, slider := range page.Items {
		views = append(views, rt.sliderView(slider))
	}
	return httpx.WithRepJSON(c, fiber.Map{
		"items":      views,
		"pagination": page.Pagination,
	})
}

func (rt *Router) getSlider(c *fiber.Ctx) error {
	slider, err := rt.Services.Slider.GetSlider(c.UserContext(), c.Params("id"))
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, rt.sliderView(slider))
}

func (rt *Router) getSliderSet(c *fiber.Ctx) error {
	code, err := paramCode(c)
	if err != nil {
		return rt.fail(c, err)
	}
	replicas, err := rt.Services.Slider.GetSliderSet(c.UserContext(), code)
	if err != nil {
		return rt.fail(c, err)
	}
	views := make([]fiber.Map, 0, len(replicas))
	for _, slider := range replicas {
		views = append(views, rt.sliderView(slider))
	}
	return httpx.WithRepJSON(c, views)
}

func (rt *Router) updateSlider(c *fiber.Ctx) error {
	var req model.UpdateSliderReq
	if err := rt.parseBody(c, &req); err != nil {
		return rt.fail(c, err)
	}
	image, err := rt.sliderImage(c)
	if err != nil {
		return rt.fail(c, err)
	}
	slider, err := rt.Services.Slider.UpdateSlider(c.UserContext(), c.Params("id"), &req, image)
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, rt.sliderView(slider))
}

func (rt *Router) deleteSliderSet(c *fiber.Ctx) error {
	code, err := paramCode(c)
	if err != nil {
		return rt.fail(c, err)
	}
	deleted, err := rt.Services.Slider.DeleteSliderSet(c.UserContext(), code)
	if err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{
		"deleted": deleted,
		"message": i18n.TranslateData(c, "record.deleted_count", map[string]any{"Count": deleted}),
	})
}

func (rt *Router) adjustSliderUsage(c *fiber.Ctx) error {
	delta, err := strconv.Atoi(c.Query("delta", "1"))
	if err != nil {
		return rt.fail(c, errs.Validationf("invalid delta %q", c.Query("delta")))
	}
	if err := rt.Services.Slider.AdjustUseCount(c.UserContext(), c.Params("id"), delta); err != nil {
		return rt.fail(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

// sliderImage extracts at most one image from the request.
func (rt *Router) sliderImage(c *fiber.Ctx) (*upload.File, error) {
	files, err := rt.intakeFiles(c, "image")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > 1 {
		return nil, errs.Validationf("a slider carries a single image, got %d files", len(files))
	}
	return &files[0], nil
}

// sliderView augments the stored record with its resolved image URL; only
// the relative path is ever persisted.
func (rt *Router) sliderView(slider *model.Slider) fiber.Map {
	view := fiber.Map{"slider": slider}
	if slider.Image != "" {
		view["imageUrl"] = rt.Storage.FileURL(slider.Image)
	}
	return view
}
