package model

// DropdownOption is a reusable select value (category, reward tier, region
// and so on) grouped by Type. Like sliders, options replicate across active
// languages under one UniqueCode. The (type, language_id, name) tuple must be
// unique so an option name cannot repeat inside one dropdown per language.
type DropdownOption struct {
	BaseModel  `bson:",inline"`
	OptionID   string `gorm:"column:option_id;size:64;uniqueIndex" json:"optionId" bson:"option_id"`
	UniqueCode int64  `gorm:"column:unique_code;uniqueIndex:uk_code_lang" json:"uniqueCode" bson:"unique_code"`
	LanguageID string `gorm:"column:language_id;size:64;index;uniqueIndex:uk_code_lang;uniqueIndex:uk_type_lang_name" json:"languageId" bson:"language_id"`
	Type       string `gorm:"column:type;size:64;not null;uniqueIndex:uk_type_lang_name" json:"type" bson:"type"`
	Name       string `gorm:"column:name;size:255;not null;uniqueIndex:uk_type_lang_name" json:"name" bson:"name"`
	Color      string `gorm:"column:color;size:32" json:"color" bson:"color"`
	SortOrder  int    `gorm:"column:sort_order;default:0" json:"sortOrder" bson:"sort_order"`
	IsActive   bool   `gorm:"column:is_active;default:true" json:"isActive" bson:"is_active"`
	UseCount   int    `gorm:"column:use_count;default:0" json:"useCount" bson:"use_count"`
}

func (DropdownOption) TableName() string {
	return "t_dropdown_option"
}

func (DropdownOption) CollectionName() string {
	return "dropdown_option"
}
