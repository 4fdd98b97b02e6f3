package consts

import "time"

// Cache key prefixes. Settings keys combine visibility, group type,
// and optionally the setting key.
const (
	SettingGroupKeyPrefix = "settings:group:" // settings:group:<visibility>:<groupType>
	SettingKeyPrefix      = "settings:key:"   // settings:key:<visibility>:<groupType>:<key>
	LanguageActiveKey     = "languages:active"
	LanguageDefaultKey    = "languages:default"
)

// Visibility scopes for settings reads.
const (
	VisibilityPublic = "public"
	VisibilityAdmin  = "admin"
)

// Record types tag what a setting value holds.
const (
	RecordTypeText    = "text"
	RecordTypeNumber  = "number"
	RecordTypeBoolean = "boolean"
	RecordTypeFile    = "file"
)

// Language directions.
const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

// File name prefixes for replicated media.
const (
	FilePrefixSlider   = "slider"
	FilePrefixDropdown = "dropdown"
	FilePrefixSetting  = "setting"
)

// Cache TTLs. Settings use a short TTL: writes invalidate explicitly, the
// TTL only bounds memory.
const (
	SettingCacheTTL  = 2 * time.Minute
	LanguageCacheTTL = 10 * time.Minute
)

// Unique code generation bounds.
const (
	UniqueCodeDigits      = 10
	UniqueCodeMaxAttempts = 25
)
