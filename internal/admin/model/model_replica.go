package model

// Accessors used by the replication engine to stamp clones with their
// language, shared unique code, and fresh public id without knowing the
// concrete entity type.

func (s *Slider) GetPublicID() string { return s.SliderID }

func (s *Slider) SetPublicID(id string) { s.SliderID = id }

func (s *Slider) GetUniqueCode() int64 { return s.UniqueCode }

func (s *Slider) SetUniqueCode(c int64) { s.UniqueCode = c }

func (s *Slider) GetLanguageID() string { return s.LanguageID }

func (s *Slider) SetLanguageID(id string) { s.LanguageID = id }

func (s *Slider) GetUseCount() int { return s.UseCount }

func (s *Slider) GetFilePath() string { return s.Image }

func (s *Slider) SetFilePath(path string) { s.Image = path }

func (o *DropdownOption) GetPublicID() string { return o.OptionID }

func (o *DropdownOption) SetPublicID(id string) { o.OptionID = id }

func (o *DropdownOption) GetUniqueCode() int64 { return o.UniqueCode }

func (o *DropdownOption) SetUniqueCode(c int64) { o.UniqueCode = c }

func (o *DropdownOption) GetLanguageID() string { return o.LanguageID }

func (o *DropdownOption) SetLanguageID(id string) { o.LanguageID = id }

func (o *DropdownOption) GetUseCount() int { return o.UseCount }
