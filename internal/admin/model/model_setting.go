package model

import (
	"strconv"

	"github.com/crowdkit/crowdkit/internal/admin/consts"
	"gorm.io/datatypes"
)

// Setting is one keyed configuration record. Settings are grouped by
// GroupType (a page or feature area) and addressed by (GroupType, Key), which
// is unique. Value holds a JSON document whose shape depends on RecordType.
type Setting struct {
	BaseModel  `bson:",inline"`
	SettingID  string         `gorm:"column:setting_id;size:64;uniqueIndex" json:"settingId" bson:"setting_id"`
	GroupType  string         `gorm:"column:group_type;size:64;not null;uniqueIndex:uk_group_key" json:"groupType" bson:"group_type"`
	Key        string         `gorm:"column:setting_key;size:128;not null;uniqueIndex:uk_group_key" json:"key" bson:"setting_key"`
	Value      datatypes.JSON `gorm:"column:value;type:json" json:"value" bson:"value"`
	RecordType string         `gorm:"column:record_type;size:16;not null" json:"recordType" bson:"record_type"`
	IsPublic   bool           `gorm:"column:is_public;default:true" json:"isPublic" bson:"is_public"`
}

func (Setting) TableName() string {
	return "t_setting"
}

func (Setting) CollectionName() string {
	return "setting"
}

// SettingValue is the JSON document stored in Setting.Value. Exactly one
// field is meaningful per RecordType; File additionally keeps the original
// upload name for display.
type SettingValue struct {
	Text         string  `json:"text,omitempty"`
	Number       float64 `json:"number,omitempty"`
	Bool         bool    `json:"bool,omitempty"`
	FilePath     string  `json:"filePath,omitempty"`
	OriginalName string  `json:"originalName,omitempty"`
}

func NewTextValue(text string) (string, datatypes.JSON) {
	return consts.RecordTypeText, datatypes.JSON(`{"text":` + strconv.Quote(text) + `}`)
}

func NewNumberValue(n float64) (string, datatypes.JSON) {
	return consts.RecordTypeNumber, datatypes.JSON(`{"number":` + strconv.FormatFloat(n, 'f', -1, 64) + `}`)
}

func NewBoolValue(b bool) (string, datatypes.JSON) {
	return consts.RecordTypeBoolean, datatypes.JSON(`{"bool":` + strconv.FormatBool(b) + `}`)
}

func NewFileValue(filePath, originalName string) (string, datatypes.JSON) {
	return consts.RecordTypeFile, datatypes.JSON(`{"filePath":` + strconv.Quote(filePath) +
		`,"originalName":` + strconv.Quote(originalName) + `}`)
}
