package repository

import (
	"errors"
	"time"

	"facility-cleaning-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskRepository handles database operations for cleaning tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new cleaning task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *TaskRepository) WithTx(tx *gorm.DB) *TaskRepository {
	return &TaskRepository{db: tx}
}

// CreateInBatches bulk-inserts tasks in ordered batches. A failure in any
// batch surfaces immediately; inside a transaction that aborts the whole
// materialization.
func (r *TaskRepository) CreateInBatches(tasks []models.CleaningTask, batchSize int) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.CreateInBatches(tasks, batchSize).Error
}

// GetByID retrieves a cleaning task by ID
func (r *TaskRepository) GetByID(id uuid.UUID) (*models.CleaningTask, error) {
	var task models.CleaningTask
	err := r.db.First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update updates a cleaning task
func (r *TaskRepository) Update(task *models.CleaningTask) error {
	return r.db.Save(task).Error
}

// ListByWorkOrderID retrieves all tasks of a work order ordered by occurrence
func (r *TaskRepository) ListByWorkOrderID(workOrderID uuid.UUID) ([]models.CleaningTask, error) {
	var tasks []models.CleaningTask
	err := r.db.
		Where("work_order_id = ?", workOrderID).
		Order("scheduled_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByWorkOrderID counts the tasks of a work order
func (r *TaskRepository) CountByWorkOrderID(workOrderID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.CleaningTask{}).
		Where("work_order_id = ?", workOrderID).
		Count(&count).Error
	return count, err
}

// LatestScheduledDate returns the newest occurrence of a work order, or nil
// when no tasks exist yet
func (r *TaskRepository) LatestScheduledDate(workOrderID uuid.UUID) (*time.Time, error) {
	var task models.CleaningTask
	err := r.db.
		Where("work_order_id = ?", workOrderID).
		Order("scheduled_date DESC").
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task.ScheduledDate, nil
}

// ShiftValidPeriod moves the deadline of every not-yet-elapsed task of a
// work order by deltaHours. Tasks whose deadline already passed the cutoff
// stay untouched.
func (r *TaskRepository) ShiftValidPeriod(workOrderID uuid.UUID, deltaHours int, cutoff time.Time) error {
	return r.db.Model(&models.CleaningTask{}).
		Where("work_order_id = ? AND valid_cleaning_period >= ?", workOrderID, cutoff).
		Update("valid_cleaning_period", gorm.Expr("valid_cleaning_period + make_interval(hours => ?)", deltaHours)).Error
}

// SetActive flips the active flag on every task of a work order
func (r *TaskRepository) SetActive(workOrderID uuid.UUID, active bool) error {
	return r.db.Model(&models.CleaningTask{}).
		Where("work_order_id = ?", workOrderID).
		Update("active", active).Error
}

// DeleteByWorkOrderID bulk-deletes every task of a work order
func (r *TaskRepository) DeleteByWorkOrderID(workOrderID uuid.UUID) error {
	return r.db.Delete(&models.CleaningTask{}, "work_order_id = ?", workOrderID).Error
}

// DistinctAssetTaskTypeIDs returns the asset task types a work order has
// tasks for
func (r *TaskRepository) DistinctAssetTaskTypeIDs(workOrderID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.CleaningTask{}).
		Distinct("asset_task_type_id").
		Where("work_order_id = ?", workOrderID).
		Pluck("asset_task_type_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// AssetTaskTypesInUse returns the subset of the given asset task types that
// still have tasks referencing them
func (r *TaskRepository) AssetTaskTypesInUse(assetTaskTypeIDs []uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.CleaningTask{}).
		Distinct("asset_task_type_id").
		Where("asset_task_type_id IN ?", assetTaskTypeIDs).
		Pluck("asset_task_type_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
