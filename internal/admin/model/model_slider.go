package model

// Slider is a promotional banner. Sliders are created as replica sets: one
// record per active language sharing a UniqueCode, each carrying its own
// language-specific image copy. After creation replicas diverge
// independently; only UniqueCode stays shared.
type Slider struct {
	BaseModel   `bson:",inline"`
	SliderID    string `gorm:"column:slider_id;size:64;uniqueIndex" json:"sliderId" bson:"slider_id"`
	UniqueCode  int64  `gorm:"column:unique_code;uniqueIndex:uk_code_lang" json:"uniqueCode" bson:"unique_code"`
	LanguageID  string `gorm:"column:language_id;size:64;index;uniqueIndex:uk_code_lang" json:"languageId" bson:"language_id"`
	Title       string `gorm:"column:title;size:255;not null" json:"title" bson:"title"`
	Description string `gorm:"column:description;type:text" json:"description" bson:"description"`
	Image       string `gorm:"column:image;size:512" json:"image" bson:"image"`
	Link        string `gorm:"column:link;size:512" json:"link" bson:"link"`
	SortOrder   int    `gorm:"column:sort_order;default:0" json:"sortOrder" bson:"sort_order"`
	IsActive    bool   `gorm:"column:is_active;default:true" json:"isActive" bson:"is_active"`
	UseCount    int    `gorm:"column:use_count;default:0" json:"useCount" bson:"use_count"`
}

func (Slider) TableName() string {
	return "t_slider"
}

func (Slider) CollectionName() string {
	return "slider"
}
