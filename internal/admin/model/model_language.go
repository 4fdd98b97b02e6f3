package model

// Language is the reference entity for active locales. Folder is the short
// code used in file naming (e.g. "en"); Direction is "ltr" or "rtl".
// Languages are immutable for practical purposes: deactivating one never
// retroactively deletes existing replicas.
type Language struct {
	BaseModel  `bson:",inline"`
	LanguageID string `gorm:"column:language_id;size:64;uniqueIndex" json:"languageId" bson:"language_id"`
	Name       string `gorm:"column:name;size:128;not null" json:"name" bson:"name"`
	Folder     string `gorm:"column:folder;size:16;uniqueIndex" json:"folder" bson:"folder"`
	Direction  string `gorm:"column:direction;size:8;default:ltr" json:"direction" bson:"direction"`
	IsActive   bool   `gorm:"column:is_active;default:true" json:"isActive" bson:"is_active"`
	IsDefault  bool   `gorm:"column:is_default;default:false" json:"isDefault" bson:"is_default"`
}

func (Language) TableName() string {
	return "t_language"
}

// CollectionName is the document-store collection for languages.
func (Language) CollectionName() string {
	return "language"
}
