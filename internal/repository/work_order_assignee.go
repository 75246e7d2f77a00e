package repository

import (
	"errors"

	"facility-cleaning-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssigneeRepository handles database operations for work order rosters
type AssigneeRepository struct {
	db *gorm.DB
}

// NewAssigneeRepository creates a new assignee repository
func NewAssigneeRepository(db *gorm.DB) *AssigneeRepository {
	return &AssigneeRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *AssigneeRepository) WithTx(tx *gorm.DB) *AssigneeRepository {
	return &AssigneeRepository{db: tx}
}

// Create creates a new work order assignee record with its sets
func (r *AssigneeRepository) Create(assignee *models.WorkOrderAssignee) error {
	return r.db.Create(assignee).Error
}

// GetByWorkOrderID retrieves the roster of a work order with all three sets
func (r *AssigneeRepository) GetByWorkOrderID(workOrderID uuid.UUID) (*models.WorkOrderAssignee, error) {
	var assignee models.WorkOrderAssignee
	err := r.db.
		Preload("Teams").
		Preload("Cleaners").
		Preload("Inspectors").
		First(&assignee, "work_order_id = ?", workOrderID).Error
	if err != nil {
		return nil, err
	}
	return &assignee, nil
}

// ReplaceTeams replaces the team set of the roster
func (r *AssigneeRepository) ReplaceTeams(assignee *models.WorkOrderAssignee, teams []models.Team) error {
	return r.db.Model(assignee).Association("Teams").Replace(toTeamPtrs(teams))
}

// ReplaceCleaners replaces the cleaner set of the roster
func (r *AssigneeRepository) ReplaceCleaners(assignee *models.WorkOrderAssignee, cleaners []models.Member) error {
	return r.db.Model(assignee).Association("Cleaners").Replace(toMemberPtrs(cleaners))
}

// ReplaceInspectors replaces the inspector set of the roster
func (r *AssigneeRepository) ReplaceInspectors(assignee *models.WorkOrderAssignee, inspectors []models.Member) error {
	return r.db.Model(assignee).Association("Inspectors").Replace(toMemberPtrs(inspectors))
}

// SetActive flips the roster's active flag for a work order
func (r *AssigneeRepository) SetActive(workOrderID uuid.UUID, active bool) error {
	return r.db.Model(&models.WorkOrderAssignee{}).
		Where("work_order_id = ?", workOrderID).
		Update("active", active).Error
}

// DeleteByWorkOrderID deletes the roster of a work order, clearing the join
// tables first
func (r *AssigneeRepository) DeleteByWorkOrderID(workOrderID uuid.UUID) error {
	assignee, err := r.GetByWorkOrderID(workOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if err := r.db.Model(assignee).Association("Teams").Clear(); err != nil {
		return err
	}
	if err := r.db.Model(assignee).Association("Cleaners").Clear(); err != nil {
		return err
	}
	if err := r.db.Model(assignee).Association("Inspectors").Clear(); err != nil {
		return err
	}
	return r.db.Delete(&models.WorkOrderAssignee{}, "work_order_id = ?", workOrderID).Error
}

func toTeamPtrs(teams []models.Team) []*models.Team {
	out := make([]*models.Team, len(teams))
	for i := range teams {
		out[i] = &teams[i]
	}
	return out
}

func toMemberPtrs(members []models.Member) []*models.Member {
	out := make([]*models.Member, len(members))
	for i := range members {
		out[i] = &members[i]
	}
	return out
}
