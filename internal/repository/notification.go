package repository

import (
	"facility-cleaning-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationRepository handles database operations for staff notifications
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *NotificationRepository) WithTx(tx *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: tx}
}

// Create creates a new notification
func (r *NotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// DeleteForUsers removes a work order's notifications for the given users,
// used when staff is unassigned
func (r *NotificationRepository) DeleteForUsers(workOrderID uuid.UUID, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	return r.db.
		Delete(&models.Notification{}, "work_order_id = ? AND user_id IN ?", workOrderID, userIDs).Error
}

// DeleteByWorkOrderID removes every notification of a work order
func (r *NotificationRepository) DeleteByWorkOrderID(workOrderID uuid.UUID) error {
	return r.db.Delete(&models.Notification{}, "work_order_id = ?", workOrderID).Error
}

// TaskImageRepository handles database operations for task evidence records
type TaskImageRepository struct {
	db *gorm.DB
}

// NewTaskImageRepository creates a new task image repository
func NewTaskImageRepository(db *gorm.DB) *TaskImageRepository {
	return &TaskImageRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *TaskImageRepository) WithTx(tx *gorm.DB) *TaskImageRepository {
	return &TaskImageRepository{db: tx}
}

// CountByTaskID counts the evidence images attached to a task
func (r *TaskImageRepository) CountByTaskID(taskID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.TaskImage{}).
		Where("cleaning_task_id = ?", taskID).
		Count(&count).Error
	return count, err
}

// DeleteByWorkOrderID removes every evidence record of a work order
func (r *TaskImageRepository) DeleteByWorkOrderID(workOrderID uuid.UUID) error {
	return r.db.Delete(&models.TaskImage{}, "work_order_id = ?", workOrderID).Error
}
