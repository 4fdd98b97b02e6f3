package model

import "time"

// BaseModel carries the backend-assigned primary key and timestamps. The
// primary key is opaque and never exposed externally; entities expose their
// public identifier instead.
type BaseModel struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-" bson:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt" bson:"updated_at"`
}

// TouchCreated sets the creation timestamp; used by adapters whose engine
// does not assign it automatically.
func (m *BaseModel) TouchCreated(t time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = t
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = t
	}
}

// TouchUpdated sets the update timestamp.
func (m *BaseModel) TouchUpdated(t time.Time) {
	m.UpdatedAt = t
}

// Timestamped is implemented by models embedding BaseModel.
type Timestamped interface {
	TouchCreated(t time.Time)
	TouchUpdated(t time.Time)
}
