package repository

import (
	"facility-cleaning-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleRepository handles database operations for work order schedules
type ScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *ScheduleRepository) WithTx(tx *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: tx}
}

// Create creates a new work order schedule
func (r *ScheduleRepository) Create(schedule *models.WorkOrderSchedule) error {
	return r.db.Create(schedule).Error
}

// GetByWorkOrderID retrieves the schedule of a work order
func (r *ScheduleRepository) GetByWorkOrderID(workOrderID uuid.UUID) (*models.WorkOrderSchedule, error) {
	var schedule models.WorkOrderSchedule
	err := r.db.First(&schedule, "work_order_id = ?", workOrderID).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Update updates a work order schedule
func (r *ScheduleRepository) Update(schedule *models.WorkOrderSchedule) error {
	return r.db.Save(schedule).Error
}

// SetActive flips the schedule's active flag for a work order
func (r *ScheduleRepository) SetActive(workOrderID uuid.UUID, active bool) error {
	return r.db.Model(&models.WorkOrderSchedule{}).
		Where("work_order_id = ?", workOrderID).
		Update("active", active).Error
}

// DeleteByWorkOrderID deletes the schedule of a work order
func (r *ScheduleRepository) DeleteByWorkOrderID(workOrderID uuid.UUID) error {
	return r.db.Delete(&models.WorkOrderSchedule{}, "work_order_id = ?", workOrderID).Error
}
