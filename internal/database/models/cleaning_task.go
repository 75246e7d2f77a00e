package models

import (
	"time"

	"github.com/google/uuid"
)

// CleaningTask is one concrete, dated occurrence of a work order's cleaning
// obligation. ValidCleaningPeriod is the absolute deadline: ScheduledDate
// plus the schedule's cleaning valid period in hours. The composite unique
// index guarantees a single task per (work order, asset task type, occurrence).
type CleaningTask struct {
	BaseModel
	WorkOrderID         uuid.UUID  `json:"work_order_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_task_occurrence" validate:"required"`
	AssetID             uuid.UUID  `json:"asset_id" gorm:"type:uuid;not null;index" validate:"required"`
	RoomID              uuid.UUID  `json:"room_id" gorm:"type:uuid;not null;index" validate:"required"`
	AssetTaskTypeID     uuid.UUID  `json:"asset_task_type_id" gorm:"type:uuid;not null;uniqueIndex:idx_task_occurrence" validate:"required"`
	ScheduledDate       time.Time  `json:"scheduled_date" gorm:"not null;uniqueIndex:idx_task_occurrence" validate:"required"`
	ValidCleaningPeriod time.Time  `json:"valid_cleaning_period" gorm:"not null" validate:"required"`
	IsDone              bool       `json:"is_done" gorm:"default:false"`
	IsApproved          bool       `json:"is_approved" gorm:"default:false"`
	LastCleaned         *time.Time `json:"last_cleaned,omitempty"`
	Exclude             bool       `json:"exclude" gorm:"default:false"`
	Active              bool       `json:"active" gorm:"default:true"`

	// Relationships
	WorkOrder     WorkOrder     `json:"work_order,omitempty" gorm:"foreignKey:WorkOrderID;constraint:OnDelete:CASCADE"`
	AssetTaskType AssetTaskType `json:"asset_task_type,omitempty" gorm:"foreignKey:AssetTaskTypeID"`
}

// TableName returns the table name for CleaningTask
func (CleaningTask) TableName() string {
	return "cleaning_tasks"
}

// TaskImage is an evidence record attached to a cleaning task. Upload and
// storage are owned externally; the core keeps the rows for threshold counts
// and cascade deletion on reset.
type TaskImage struct {
	BaseModel
	CleaningTaskID uuid.UUID `json:"cleaning_task_id" gorm:"type:uuid;not null;index" validate:"required"`
	WorkOrderID    uuid.UUID `json:"work_order_id" gorm:"type:uuid;not null;index" validate:"required"`
	Path           string    `json:"path" gorm:"size:255;not null" validate:"required"`
	Note           string    `json:"note" gorm:"type:text"`
}

// TableName returns the table name for TaskImage
func (TaskImage) TableName() string {
	return "task_images"
}

// Notification is a staff notification row written fire-and-forget when a
// work order's roster changes
type Notification struct {
	BaseModel
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index" validate:"required"`
	SenderID    uuid.UUID `json:"sender_id" gorm:"type:uuid"`
	WorkOrderID uuid.UUID `json:"work_order_id" gorm:"type:uuid;not null;index" validate:"required"`
	Message     string    `json:"message" gorm:"size:255;not null" validate:"required"`
	Read        bool      `json:"read" gorm:"default:false"`
}

// TableName returns the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
