package model

// CreateLanguageReq request for registering a language
type CreateLanguageReq struct {
	Name      string `json:"name" validate:"required,max=128"`
	Folder    string `json:"folder" validate:"required,lowercase,alphanum,max=8"`
	Direction string `json:"direction" validate:"omitempty,oneof=ltr rtl"`
	IsActive  *bool  `json:"isActive,omitempty"`
}

// UpdateLanguageReq request for updating a language (Folder is not allowed to be modified)
type UpdateLanguageReq struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=128"`
	Direction *string `json:"direction,omitempty" validate:"omitempty,oneof=ltr rtl"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// CreateSliderReq request for creating a slider replica set
type CreateSliderReq struct {
	Title       string   `json:"title" form:"title" validate:"required,max=255"`
	Description string   `json:"description" form:"description"`
	Link        string   `json:"link" form:"link" validate:"omitempty,url"`
	SortOrder   int      `json:"sortOrder" form:"sortOrder" validate:"gte=0"`
	LanguageID  string   `json:"languageId" form:"languageId"`
	LanguageIDs []string `json:"languageIds" form:"languageIds"`
}

// UpdateSliderReq request for updating a single slider replica
type UpdateSliderReq struct {
	Title       *string `json:"title,omitempty" form:"title" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty" form:"description"`
	Link        *string `json:"link,omitempty" form:"link" validate:"omitempty,url"`
	SortOrder   *int    `json:"sortOrder,omitempty" form:"sortOrder" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"isActive,omitempty" form:"isActive"`
}

// CreateDropdownReq request for creating a dropdown option replica set
type CreateDropdownReq struct {
	Type        string   `json:"type" validate:"required,max=64"`
	Name        string   `json:"name" validate:"required,max=255"`
	Color       string   `json:"color" validate:"omitempty,hexcolor"`
	SortOrder   int      `json:"sortOrder" validate:"gte=0"`
	LanguageID  string   `json:"languageId"`
	LanguageIDs []string `json:"languageIds"`
}

// UpdateDropdownReq request for updating a single dropdown option replica
type UpdateDropdownReq struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Color     *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	SortOrder *int    `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// PageQueryReq common pagination query parameters
type PageQueryReq struct {
	PageNum  int `query:"pageNum" json:"pageNum"`
	PageSize int `query:"pageSize" json:"pageSize"`
}
