package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkOrder is the schedulable unit of recurring cleaning work.
// Its Schedule, Assignee roster and CleaningTask set are owned exclusively
// by the work order service; only Reset tears them down.
type WorkOrder struct {
	BaseModel
	Name               string          `json:"name" gorm:"size:100;not null;uniqueIndex" validate:"required,min=1,max=100"`
	Status             WorkOrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'created'"`
	Active             bool            `json:"active" gorm:"default:true"`
	OverridePermission bool            `json:"override_permission" gorm:"default:false"`
	EvidenceLevelID    *uuid.UUID      `json:"evidence_level_id,omitempty" gorm:"type:uuid"`
	// AssetTaskTypeID carries the single asset/task-type pairing for work
	// orders assembled incrementally, so generation can fire before any task
	// rows exist. Batch-created orders spanning several pairings leave it nil.
	AssetTaskTypeID *uuid.UUID `json:"asset_task_type_id,omitempty" gorm:"type:uuid"`

	// Relationships
	AssetTaskType *AssetTaskType     `json:"asset_task_type,omitempty" gorm:"foreignKey:AssetTaskTypeID"`
	EvidenceLevel *EvidenceLevel     `json:"evidence_level,omitempty" gorm:"foreignKey:EvidenceLevelID"`
	Schedule      *WorkOrderSchedule `json:"schedule,omitempty" gorm:"foreignKey:WorkOrderID"`
	Assignee      *WorkOrderAssignee `json:"assignee,omitempty" gorm:"foreignKey:WorkOrderID"`
	Tasks         []CleaningTask     `json:"tasks,omitempty" gorm:"foreignKey:WorkOrderID"`
}

// TableName returns the table name for WorkOrder
func (WorkOrder) TableName() string {
	return "work_orders"
}

// WorkOrderSchedule is the one-to-one time-window and cadence configuration
// of a work order. Fields are pointers because the schedule is assembled
// incrementally; any subset may be unset until configuration completes.
type WorkOrderSchedule struct {
	BaseModel
	WorkOrderID         uuid.UUID  `json:"work_order_id" gorm:"type:uuid;not null;uniqueIndex" validate:"required"`
	FrequencyID         *uuid.UUID `json:"frequency_id,omitempty" gorm:"type:uuid"`
	StartDate           *time.Time `json:"start_date,omitempty" gorm:"type:date"`
	StartHour           *int       `json:"start_hour,omitempty"`
	StartMinute         *int       `json:"start_minute,omitempty"`
	EndDate             *time.Time `json:"end_date,omitempty" gorm:"type:date"`
	CleaningValidPeriod *int       `json:"cleaning_valid_period,omitempty"`
	Active              bool       `json:"active" gorm:"default:true"`

	// Relationships
	Frequency *Frequency `json:"frequency,omitempty" gorm:"foreignKey:FrequencyID"`
}

// TableName returns the table name for WorkOrderSchedule
func (WorkOrderSchedule) TableName() string {
	return "work_order_schedules"
}

// WorkOrderAssignee is the one-to-one staff roster of a work order. The
// three sets are stored as join tables; duplicates collapse on assignment.
type WorkOrderAssignee struct {
	BaseModel
	WorkOrderID uuid.UUID `json:"work_order_id" gorm:"type:uuid;not null;uniqueIndex" validate:"required"`
	Active      bool      `json:"active" gorm:"default:true"`

	// Relationships
	Teams      []Team   `json:"teams,omitempty" gorm:"many2many:work_order_assignee_teams;constraint:OnDelete:CASCADE"`
	Cleaners   []Member `json:"cleaners,omitempty" gorm:"many2many:work_order_assignee_cleaners;constraint:OnDelete:CASCADE"`
	Inspectors []Member `json:"inspectors,omitempty" gorm:"many2many:work_order_assignee_inspectors;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for WorkOrderAssignee
func (WorkOrderAssignee) TableName() string {
	return "work_order_assignees"
}
