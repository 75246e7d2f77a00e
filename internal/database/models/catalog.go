package models

import "github.com/google/uuid"

// Room represents a cleanable room in the facility
type Room struct {
	BaseModel
	Name   string `json:"name" gorm:"size:100;not null" validate:"required"`
	Floor  string `json:"floor" gorm:"size:40"`
	Active bool   `json:"active" gorm:"default:true"`
}

// TableName returns the table name for Room
func (Room) TableName() string {
	return "rooms"
}

// Asset represents a cleanable asset inside a room
type Asset struct {
	BaseModel
	RoomID uuid.UUID `json:"room_id" gorm:"type:uuid;not null;index" validate:"required"`
	Name   string    `json:"name" gorm:"size:100;not null" validate:"required"`
	Active bool      `json:"active" gorm:"default:true"`

	// Relationships
	Room Room `json:"room,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Asset
func (Asset) TableName() string {
	return "assets"
}

// AssetTaskType pairs an asset with a cleaning type and a recurrence rule.
// MssActive flips to true once any work order has generated tasks for it;
// Active controls whether scheduling is currently enabled.
type AssetTaskType struct {
	BaseModel
	RoomID       uuid.UUID `json:"room_id" gorm:"type:uuid;not null;index" validate:"required"`
	AssetID      uuid.UUID `json:"asset_id" gorm:"type:uuid;not null;index" validate:"required"`
	CleaningType string    `json:"cleaning_type" gorm:"size:100;not null" validate:"required"`
	FrequencyID  uuid.UUID `json:"frequency_id" gorm:"type:uuid;not null;index" validate:"required"`
	MssActive    bool      `json:"mss_active" gorm:"default:false"`
	Active       bool      `json:"active" gorm:"default:true"`

	// Relationships
	Room      Room      `json:"room,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	Asset     Asset     `json:"asset,omitempty" gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	Frequency Frequency `json:"frequency,omitempty" gorm:"foreignKey:FrequencyID"`
}

// TableName returns the table name for AssetTaskType
func (AssetTaskType) TableName() string {
	return "asset_task_types"
}

// EvidenceLevel defines how many evidence images a task completion requires
type EvidenceLevel struct {
	BaseModel
	Name      string `json:"name" gorm:"size:40;not null" validate:"required"`
	MinImages int    `json:"min_images" gorm:"not null;default:0" validate:"min=0"`
	MaxImages int    `json:"max_images" gorm:"not null;default:0" validate:"min=0"`
}

// TableName returns the table name for EvidenceLevel
func (EvidenceLevel) TableName() string {
	return "evidence_levels"
}
