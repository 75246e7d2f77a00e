package service

import (
	"errors"
	"fmt"
	"time"

	"facility-cleaning-backend/internal/database/models"
	apperrors "facility-cleaning-backend/internal/errors"
	"facility-cleaning-backend/internal/logger"
	"facility-cleaning-backend/internal/repository"
	"facility-cleaning-backend/internal/scheduler"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskService handles cleaning task completion and approval
type TaskService struct {
	db            *gorm.DB
	clock         scheduler.Clock
	log           *logger.Logger
	taskRepo      *repository.TaskRepository
	workOrderRepo *repository.WorkOrderRepository
	evidenceRepo  *repository.EvidenceLevelRepository
	taskImageRepo *repository.TaskImageRepository
}

// NewTaskService creates a new task service
func NewTaskService(db *gorm.DB, clock scheduler.Clock) *TaskService {
	return &TaskService{
		db:            db,
		clock:         clock,
		log:           logger.New(),
		taskRepo:      repository.NewTaskRepository(db),
		workOrderRepo: repository.NewWorkOrderRepository(db),
		evidenceRepo:  repository.NewEvidenceLevelRepository(db),
		taskImageRepo: repository.NewTaskImageRepository(db),
	}
}

// TaskResponse represents a cleaning task with its derived status
type TaskResponse struct {
	ID            uuid.UUID  `json:"id"`
	WorkOrderID   uuid.UUID  `json:"work_order_id"`
	AssetID       uuid.UUID  `json:"asset_id"`
	RoomID        uuid.UUID  `json:"room_id"`
	ScheduledDate time.Time  `json:"scheduled_date"`
	Deadline      time.Time  `json:"deadline"`
	Status        TaskStatus `json:"status"`
	IsDone        bool       `json:"is_done"`
	IsApproved    bool       `json:"is_approved"`
	LastCleaned   *time.Time `json:"last_cleaned,omitempty"`
	Exclude       bool       `json:"exclude"`
	Active        bool       `json:"active"`
}

// GetStatus retrieves a task with its status evaluated at the current instant
func (s *TaskService) GetStatus(taskID uuid.UUID) (*TaskResponse, error) {
	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.WrapStorage(err)
	}
	return s.toResponse(task), nil
}

// ListByWorkOrder retrieves the tasks of a work order ordered by occurrence,
// each with its status evaluated at the current instant
func (s *TaskService) ListByWorkOrder(workOrderID uuid.UUID) ([]TaskResponse, error) {
	if _, err := s.workOrderRepo.GetByID(workOrderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWorkOrderNotFound
		}
		return nil, apperrors.WrapStorage(err)
	}
	tasks, err := s.taskRepo.ListByWorkOrderID(workOrderID)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *s.toResponse(&tasks[i])
	}
	return responses, nil
}

// MarkCleaned records a cleaning pass on a task. Cleaning after the deadline
// requires the work order's override permission; excluded tasks are never
// cleanable. A new pass resets approval.
func (s *TaskService) MarkCleaned(taskID uuid.UUID) (*TaskResponse, error) {
	var task *models.CleaningTask

	err := s.db.Transaction(func(tx *gorm.DB) error {
		taskRepo := s.taskRepo.WithTx(tx)

		var err error
		task, err = taskRepo.GetByID(taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTaskNotFound
			}
			return fmt.Errorf("failed to load task: %w", err)
		}
		if task.Exclude {
			return apperrors.NewPreconditionError("task is excluded from cleaning")
		}
		if !task.Active {
			return apperrors.NewPreconditionError("task belongs to an inactive work order")
		}

		now := s.clock.Now()
		if now.After(task.ValidCleaningPeriod) {
			workOrder, err := s.workOrderRepo.WithTx(tx).GetByID(task.WorkOrderID)
			if err != nil {
				return fmt.Errorf("failed to load work order: %w", err)
			}
			if !workOrder.OverridePermission {
				return apperrors.NewPreconditionError("cleaning window elapsed and override is not permitted")
			}
		}

		task.LastCleaned = &now
		task.IsDone = true
		task.IsApproved = false
		if err := taskRepo.Update(task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, wrapTxError(err)
	}

	s.log.WithWorkOrder(task.WorkOrderID).WithField("task_id", taskID).Info("task marked cleaned")
	return s.toResponse(task), nil
}

// Approve closes the loop on a cleaned task. The task must have a recorded
// cleaning pass, and when the work order carries an evidence level the
// uploaded image count must meet its minimum.
func (s *TaskService) Approve(taskID uuid.UUID) (*TaskResponse, error) {
	var task *models.CleaningTask

	err := s.db.Transaction(func(tx *gorm.DB) error {
		taskRepo := s.taskRepo.WithTx(tx)

		var err error
		task, err = taskRepo.GetByID(taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTaskNotFound
			}
			return fmt.Errorf("failed to load task: %w", err)
		}
		if !task.IsDone || task.LastCleaned == nil {
			return apperrors.NewPreconditionError("task has no cleaning pass to approve")
		}

		workOrder, err := s.workOrderRepo.WithTx(tx).GetByID(task.WorkOrderID)
		if err != nil {
			return fmt.Errorf("failed to load work order: %w", err)
		}
		if workOrder.EvidenceLevelID != nil {
			level, err := s.evidenceRepo.WithTx(tx).GetByID(*workOrder.EvidenceLevelID)
			if err != nil {
				return fmt.Errorf("failed to load evidence level: %w", err)
			}
			images, err := s.taskImageRepo.WithTx(tx).CountByTaskID(taskID)
			if err != nil {
				return fmt.Errorf("failed to count task images: %w", err)
			}
			if images < int64(level.MinImages) {
				return apperrors.NewPreconditionError(
					fmt.Sprintf("task has %d evidence images, %d required", images, level.MinImages))
			}
		}

		task.IsApproved = true
		if err := taskRepo.Update(task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, wrapTxError(err)
	}

	s.log.WithWorkOrder(task.WorkOrderID).WithField("task_id", taskID).Info("task approved")
	return s.toResponse(task), nil
}

func (s *TaskService) toResponse(task *models.CleaningTask) *TaskResponse {
	return &TaskResponse{
		ID:            task.ID,
		WorkOrderID:   task.WorkOrderID,
		AssetID:       task.AssetID,
		RoomID:        task.RoomID,
		ScheduledDate: task.ScheduledDate,
		Deadline:      task.ValidCleaningPeriod,
		Status:        EvaluateTaskStatus(task, s.clock.Now()),
		IsDone:        task.IsDone,
		IsApproved:    task.IsApproved,
		LastCleaned:   task.LastCleaned,
		Exclude:       task.Exclude,
		Active:        task.Active,
	}
}
