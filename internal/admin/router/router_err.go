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
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/crowdkit/crowdkit/internal/admin/errs"
	"github.com/crowdkit/crowdkit/internal/admin/logic"
	httpx "github.com/crowdkit/crowdkit/pkg/http"
	"github.com/crowdkit/crowdkit/pkg/log"
	"github.com/crowdkit/crowdkit/pkg/upload"
)

var validate = validator.New()

// errResponse maps a domain error onto the response code table.
func errResponse(err error) *httpx.Response {
	switch {
	case errors.Is(err, logic.ErrCodeExhausted):
		return httpx.CodeExhausted
	case errors.Is(err, upload.ErrTooManyFiles):
		return httpx.TooManyFiles
	case errors.Is(err, upload.ErrFileTooLarge):
		return httpx.FileTooLarge
	case errors.Is(err, upload.ErrMimeNotAllowed):
		return httpx.UnsupportedFile
	case errors.Is(err, upload.ErrEmptyFile):
		return httpx.BadRequest
	}
	switch errs.KindOf(err) {
	case errs.KindValidation:
		return httpx.ValidationFailed
	case errs.KindNotFound:
		return httpx.NotFound
	case errs.KindConflict:
		return httpx.Conflict
	case errs.KindInUse:
		return httpx.RecordInUse
	case errs.KindDependency:
		return httpx.DependencyFailed
	}
	return httpx.InternalError
}

// fail renders err through the unified error envelope. Caller-correctable
// failures echo the domain message; everything else hides behind the generic
// one and is logged server-side.
func (rt *Router) fail(c *fiber.Ctx, err error) error {
	resp := errResponse(err)
	msg := resp.Msg
	switch errs.KindOf(err) {
	case errs.KindValidation, errs.KindNotFound, errs.KindConflict, errs.KindInUse:
		msg = err.Error()
		log.Debugw("request rejected", "path", c.Path(), "error", err)
	default:
		log.Errorw("request failed", "path", c.Path(), "error", err)
	}
	return httpx.WithRepErrMsg(c, resp.Code, msg, c.Path())
}

// parseBody decodes and validates a JSON or form body into req.
func (rt *Router) parseBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return errs.Wrap(errs.KindValidation, err, "%s", httpx.RequestParameterParsingFailed.Msg)
	}
	if err := validate.Struct(req); err != nil {
		return errs.Wrap(errs.KindValidation, err, "%s", httpx.ValidationFailed.Msg)
	}
	return nil
}

// intakeFiles normalizes the request's file payload: multipart parts when
// the form has any, otherwise a raw binary body described by headers. An
// empty request yields no files and no error.
func (rt *Router) intakeFiles(c *fiber.Ctx, fieldName string) ([]upload.File, error) {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		return upload.FromMultipart(form, rt.Upload)
	}
	contentType := c.Get(fiber.HeaderContentType)
	if len(c.Body()) == 0 || strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) ||
		strings.HasPrefix(contentType, fiber.MIMEApplicationForm) {
		return nil, nil
	}
	headers := upload.RawHeaders{
		ContentType:        c.Get(fiber.HeaderContentType),
		ContentDisposition: c.Get(fiber.HeaderContentDisposition),
		FileName:           c.Get("X-File-Name"),
	}
	return upload.FromRaw(c.Body(), headers, fieldName, rt.Upload)
}

func queryInt(c *fiber.Ctx, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

func paramCode(c *fiber.Ctx) (int64, error) {
	code, err := strconv.ParseInt(c.Params("code"), 10, 64)
	if err != nil {
		return 0, errs.Validationf("invalid unique code %q", c.Params("code"))
	}
	return code, nil
}
