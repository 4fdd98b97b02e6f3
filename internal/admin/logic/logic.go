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

package logic

import "github.com/google/wire"

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// pageWindow converts 1-based page parameters into a skip/limit window.
func pageWindow(pageNum, pageSize int) (skip, limit int64) {
	if pageNum < 1 {
		pageNum = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return int64((pageNum - 1) * pageSize), int64(pageSize)
}

// Services 统一管理所有 logic
type Services struct {
	Language *LanguageLogic
	Slider   *SliderLogic
	Dropdown *DropdownLogic
	Setting  *SettingLogic
}

func NewServices(language *LanguageLogic, slider *SliderLogic, dropdown *DropdownLogic, setting *SettingLogic) *Services {
	return &Services{
		Language: language,
		Slider:   slider,
		Dropdown: dropdown,
		Setting:  setting,
	}
}

var ProviderSet = wire.NewSet(
	NewLanguageLogic,
	NewSliderLogic,
	NewDropdownLogic,
	NewSettingLogic,
	NewServices,
)
