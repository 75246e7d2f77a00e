package repository

import (
	"facility-cleaning-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkOrderRepository handles database operations for work orders
type WorkOrderRepository struct {
	db *gorm.DB
}

// NewWorkOrderRepository creates a new work order repository
func NewWorkOrderRepository(db *gorm.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *WorkOrderRepository) WithTx(tx *gorm.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: tx}
}

// Create creates a new work order
func (r *WorkOrderRepository) Create(workOrder *models.WorkOrder) error {
	return r.db.Create(workOrder).Error
}

// GetByID retrieves a work order by ID
func (r *WorkOrderRepository) GetByID(id uuid.UUID) (*models.WorkOrder, error) {
	var workOrder models.WorkOrder
	err := r.db.First(&workOrder, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &workOrder, nil
}

// GetByName retrieves a work order by its globally unique name
func (r *WorkOrderRepository) GetByName(name string) (*models.WorkOrder, error) {
	var workOrder models.WorkOrder
	err := r.db.First(&workOrder, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &workOrder, nil
}

// GetWithAggregate retrieves a work order with its schedule, roster and
// frequency preloaded
func (r *WorkOrderRepository) GetWithAggregate(id uuid.UUID) (*models.WorkOrder, error) {
	var workOrder models.WorkOrder
	err := r.db.
		Preload("Schedule").
		Preload("Schedule.Frequency").
		Preload("Assignee").
		Preload("Assignee.Teams").
		Preload("Assignee.Cleaners").
		Preload("Assignee.Inspectors").
		First(&workOrder, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &workOrder, nil
}

// Update updates a work order
func (r *WorkOrderRepository) Update(workOrder *models.WorkOrder) error {
	return r.db.Save(workOrder).Error
}

// Delete deletes a work order
func (r *WorkOrderRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.WorkOrder{}, "id = ?", id).Error
}

// ListAll retrieves every work order
func (r *WorkOrderRepository) ListAll() ([]models.WorkOrder, error) {
	var workOrders []models.WorkOrder
	err := r.db.Find(&workOrders).Error
	if err != nil {
		return nil, err
	}
	return workOrders, nil
}
