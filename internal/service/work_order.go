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

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkOrderService orchestrates the work order aggregate: the work order
// itself, its schedule, its roster and its task set. Every operation runs in
// one transaction spanning all four records; the service is the only writer
// of schedule, roster and tasks once a work order exists.
type WorkOrderService struct {
	db        *gorm.DB
	validator *validator.Validate
	clock     scheduler.Clock
	notifier  Notifier
	batchSize int
	log       *logger.Logger

	workOrderRepo    *repository.WorkOrderRepository
	scheduleRepo     *repository.ScheduleRepository
	assigneeRepo     *repository.AssigneeRepository
	taskRepo         *repository.TaskRepository
	attRepo          *repository.AssetTaskTypeRepository
	frequencyRepo    *repository.FrequencyRepository
	teamRepo         *repository.TeamRepository
	memberRepo       *repository.MemberRepository
	notificationRepo *repository.NotificationRepository
	taskImageRepo    *repository.TaskImageRepository
	evidenceRepo     *repository.EvidenceLevelRepository
}

// NewWorkOrderService creates a new work order service. The repositories are
// built from db here because the service rebinds all of them to each
// operation's transaction.
func NewWorkOrderService(db *gorm.DB, validator *validator.Validate, clock scheduler.Clock, notifier Notifier, batchSize int) *WorkOrderService {
	if batchSize < 1 {
		batchSize = 500
	}
	return &WorkOrderService{
		db:        db,
		validator: validator,
		clock:     clock,
		notifier:  notifier,
		batchSize: batchSize,
		log:       logger.New(),

		workOrderRepo:    repository.NewWorkOrderRepository(db),
		scheduleRepo:     repository.NewScheduleRepository(db),
		assigneeRepo:     repository.NewAssigneeRepository(db),
		taskRepo:         repository.NewTaskRepository(db),
		attRepo:          repository.NewAssetTaskTypeRepository(db),
		frequencyRepo:    repository.NewFrequencyRepository(db),
		teamRepo:         repository.NewTeamRepository(db),
		memberRepo:       repository.NewMemberRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
		taskImageRepo:    repository.NewTaskImageRepository(db),
		evidenceRepo:     repository.NewEvidenceLevelRepository(db),
	}
}

// CreateWorkOrderRequest represents the request to create a fully configured
// work order. ExcludedAssetTaskTypeIDs marks pairings whose tasks are
// materialized but flagged as intentionally skipped.
type CreateWorkOrderRequest struct {
	Name                     string      `json:"name" validate:"required,min=1,max=100"`
	AssetTaskTypeIDs         []uuid.UUID `json:"asset_task_type_ids" validate:"required,min=1"`
	ExcludedAssetTaskTypeIDs []uuid.UUID `json:"excluded_asset_task_type_ids,omitempty"`
	FrequencyID              uuid.UUID   `json:"frequency_id" validate:"required"`
	CleaningValidPeriod      int         `json:"cleaning_valid_period" validate:"required,min=1"`
	StartDate                time.Time   `json:"start_date" validate:"required"`
	EndDate                  time.Time   `json:"end_date" validate:"required"`
	TeamIDs                  []uuid.UUID `json:"team_ids,omitempty"`
	CleanerIDs               []uuid.UUID `json:"cleaner_ids,omitempty"`
	InspectorIDs             []uuid.UUID `json:"inspector_ids,omitempty"`
	OverridePermission       bool        `json:"override_permission,omitempty"`
	EvidenceLevelID          *uuid.UUID  `json:"evidence_level_id,omitempty"`
	SenderID                 uuid.UUID   `json:"sender_id,omitempty"`
}

// WorkOrderResponse represents the response for work order operations.
// Schedule and Roster are filled on single-item reads only.
type WorkOrderResponse struct {
	ID                 uuid.UUID              `json:"id"`
	Name               string                 `json:"name"`
	Status             models.WorkOrderStatus `json:"status"`
	Active             bool                   `json:"active"`
	OverridePermission bool                   `json:"override_permission"`
	TaskCount          int64                  `json:"task_count"`
	Schedule           *ScheduleSummary       `json:"schedule,omitempty"`
	Roster             *RosterSummary         `json:"roster,omitempty"`
	CreatedAt          string                 `json:"created_at"`
	UpdatedAt          string                 `json:"updated_at"`
}

// ScheduleSummary is the schedule portion of a detailed work order response
type ScheduleSummary struct {
	FrequencyName       string     `json:"frequency_name,omitempty"`
	StartDate           *time.Time `json:"start_date,omitempty"`
	StartHour           *int       `json:"start_hour,omitempty"`
	StartMinute         *int       `json:"start_minute,omitempty"`
	EndDate             *time.Time `json:"end_date,omitempty"`
	CleaningValidPeriod *int       `json:"cleaning_valid_period,omitempty"`
}

// RosterSummary is the staff portion of a detailed work order response
type RosterSummary struct {
	Teams      []string `json:"teams,omitempty"`
	Cleaners   int      `json:"cleaners"`
	Inspectors int      `json:"inspectors"`
}

// Create persists a work order with its schedule, roster and generated task
// set in one transaction. The name must be globally unique, the resolved
// roster must contain at least one cleaner and one inspector, and the
// recurrence expansion must fit the configured range.
func (s *WorkOrderService) Create(req *CreateWorkOrderRequest) (*WorkOrderResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	var workOrder *models.WorkOrder
	var notifyUsers []uuid.UUID

	err := s.db.Transaction(func(tx *gorm.DB) error {
		workOrderRepo := s.workOrderRepo.WithTx(tx)

		if _, err := workOrderRepo.GetByName(req.Name); err == nil {
			return apperrors.ErrWorkOrderExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check work order name: %w", err)
		}

		frequency, err := s.frequencyRepo.WithTx(tx).GetByID(req.FrequencyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrFrequencyNotFound
			}
			return fmt.Errorf("failed to load frequency: %w", err)
		}

		if req.EvidenceLevelID != nil {
			if _, err := s.evidenceRepo.WithTx(tx).GetByID(*req.EvidenceLevelID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrEvidenceLevelNotFound
				}
				return fmt.Errorf("failed to load evidence level: %w", err)
			}
		}

		roster, err := s.resolveRoster(tx, req.TeamIDs, req.CleanerIDs, req.InspectorIDs)
		if err != nil {
			return err
		}
		// A work order cannot exist unformed.
		if len(roster.cleaners) == 0 || len(roster.inspectors) == 0 {
			return apperrors.ErrRosterEmpty
		}

		workOrder = &models.WorkOrder{
			Name:               req.Name,
			Status:             models.WorkOrderStatusGenerated,
			Active:             true,
			OverridePermission: req.OverridePermission,
			EvidenceLevelID:    req.EvidenceLevelID,
		}
		if len(req.AssetTaskTypeIDs) == 1 {
			id := req.AssetTaskTypeIDs[0]
			workOrder.AssetTaskTypeID = &id
		}
		if err := workOrderRepo.Create(workOrder); err != nil {
			return fmt.Errorf("failed to create work order: %w", err)
		}

		startHour, startMinute := req.StartDate.Hour(), req.StartDate.Minute()
		validPeriod := req.CleaningValidPeriod
		startDate, endDate := req.StartDate, req.EndDate
		schedule := &models.WorkOrderSchedule{
			WorkOrderID:         workOrder.ID,
			FrequencyID:         &frequency.ID,
			StartDate:           &startDate,
			StartHour:           &startHour,
			StartMinute:         &startMinute,
			EndDate:             &endDate,
			CleaningValidPeriod: &validPeriod,
			Active:              true,
		}
		if err := s.scheduleRepo.WithTx(tx).Create(schedule); err != nil {
			return fmt.Errorf("failed to create schedule: %w", err)
		}

		assignee := &models.WorkOrderAssignee{
			WorkOrderID: workOrder.ID,
			Active:      true,
			Teams:       roster.teams,
			Cleaners:    roster.cleaners,
			Inspectors:  roster.inspectors,
		}
		if err := s.assigneeRepo.WithTx(tx).Create(assignee); err != nil {
			return fmt.Errorf("failed to create assignee roster: %w", err)
		}

		excluded := make(map[uuid.UUID]bool, len(req.ExcludedAssetTaskTypeIDs))
		for _, id := range req.ExcludedAssetTaskTypeIDs {
			excluded[id] = true
		}

		// One expansion covers every pairing; the rule and window are shared.
		timestamps, err := scheduler.Expand(req.StartDate, req.EndDate, *frequency)
		if err != nil {
			return err
		}

		taskRepo := s.taskRepo.WithTx(tx)
		attRepo := s.attRepo.WithTx(tx)
		for _, attID := range req.AssetTaskTypeIDs {
			att, err := attRepo.GetByID(attID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrAssetTaskTypeNotFound
				}
				return fmt.Errorf("failed to load asset task type: %w", err)
			}

			tasks := scheduler.BuildTasks(workOrder.ID, att.AssetID, att.RoomID, att.ID,
				timestamps, req.CleaningValidPeriod, excluded[att.ID])
			if err := taskRepo.CreateInBatches(tasks, s.batchSize); err != nil {
				return fmt.Errorf("failed to materialize tasks: %w", err)
			}
		}

		if err := attRepo.SetMssActive(req.AssetTaskTypeIDs, true); err != nil {
			return fmt.Errorf("failed to mark asset task types active: %w", err)
		}

		notifyUsers = memberIDs(roster.cleaners, roster.inspectors)
		return nil
	})
	if err != nil {
		return nil, wrapTxError(err)
	}

	for _, userID := range notifyUsers {
		s.notifier.Notify(userID, req.SenderID, workOrder.ID,
			fmt.Sprintf("You have been assigned to work order %q", req.Name))
	}

	s.log.WithWorkOrder(workOrder.ID).Infof("work order %q created", req.Name)
	return s.toResponse(workOrder)
}

// UpdateScheduleRequest represents a partial schedule edit. Without
// Regenerate the edit commits without touching roster or tasks, so a work
// order can be configured incrementally before it is fully formed.
type UpdateScheduleRequest struct {
	StartHour           *int       `json:"start_hour,omitempty" validate:"omitempty,min=0,max=23"`
	StartMinute         *int       `json:"start_minute,omitempty" validate:"omitempty,min=0,max=59"`
	StartDate           *time.Time `json:"start_date,omitempty"`
	EndDate             *time.Time `json:"end_date,omitempty"`
	CleaningValidPeriod *int       `json:"cleaning_valid_period,omitempty" validate:"omitempty,min=1"`
	Regenerate          bool       `json:"regenerate,omitempty"`
}

// UpdateSchedule applies a partial schedule edit. With Regenerate set, an
// end-date extension expands only the delta past the latest existing task,
// and a valid-period change shifts the deadline of every not-yet-elapsed
// task by the difference.
func (s *WorkOrderService) UpdateSchedule(workOrderID uuid.UUID, req *UpdateScheduleRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return apperrors.NewValidationError("", err.Error())
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		workOrder, err := s.getWorkOrder(tx, workOrderID)
		if err != nil {
			return err
		}
		schedule, err := s.getSchedule(tx, workOrderID)
		if err != nil {
			return err
		}

		var oldValidPeriod *int
		if schedule.CleaningValidPeriod != nil {
			v := *schedule.CleaningValidPeriod
			oldValidPeriod = &v
		}
		var previousLatest *time.Time

		if req.StartHour != nil {
			schedule.StartHour = req.StartHour
		}
		if req.StartMinute != nil {
			schedule.StartMinute = req.StartMinute
		}
		if req.StartDate != nil {
			schedule.StartDate = req.StartDate
		}
		if req.EndDate != nil {
			schedule.EndDate = req.EndDate
		}
		if req.CleaningValidPeriod != nil {
			schedule.CleaningValidPeriod = req.CleaningValidPeriod
		}

		if req.Regenerate {
			latest, err := s.taskRepo.WithTx(tx).LatestScheduledDate(workOrderID)
			if err != nil {
				return fmt.Errorf("failed to find latest task: %w", err)
			}
			previousLatest = latest
		}

		if err := s.scheduleRepo.WithTx(tx).Update(schedule); err != nil {
			return fmt.Errorf("failed to update schedule: %w", err)
		}

		// Low-impact edit: commit without touching the task set. A schedule
		// that just became complete still advances the lifecycle marker.
		if !req.Regenerate {
			if workOrder.Status == models.WorkOrderStatusCreated && scheduleComplete(schedule) {
				workOrder.Status = models.WorkOrderStatusConfigured
				if err := s.workOrderRepo.WithTx(tx).Update(workOrder); err != nil {
					return fmt.Errorf("failed to update work order: %w", err)
				}
			}
			return nil
		}

		if req.CleaningValidPeriod != nil && oldValidPeriod != nil {
			rosterComplete, err := s.rosterComplete(tx, workOrderID)
			if err != nil {
				return err
			}
			if rosterComplete {
				delta := *req.CleaningValidPeriod - *oldValidPeriod
				if delta != 0 {
					if err := s.taskRepo.WithTx(tx).ShiftValidPeriod(workOrderID, delta, s.startOfToday()); err != nil {
						return fmt.Errorf("failed to shift task deadlines: %w", err)
					}
				}
			}
		}

		if req.EndDate != nil {
			rosterComplete, err := s.rosterComplete(tx, workOrderID)
			if err != nil {
				return err
			}
			readiness := readinessOf(workOrder, schedule, rosterComplete)
			// Existing tasks pin the pairing set; generateTasks resolves it
			// from them when the work order itself carries none.
			if previousLatest != nil {
				readiness.HasPairing = true
			}
			if !readiness.CanGenerate() {
				return apperrors.NewPreconditionError(
					fmt.Sprintf("cannot generate tasks: %s is not configured", readiness.MissingStep()))
			}
			if err := s.generateTasks(tx, workOrder, schedule, previousLatest); err != nil {
				return err
			}
			workOrder.Status = models.WorkOrderStatusGenerated
			if err := s.workOrderRepo.WithTx(tx).Update(workOrder); err != nil {
				return fmt.Errorf("failed to update work order: %w", err)
			}
		}

		return nil
	})
	return wrapTxError(err)
}

// SetActive propagates the active flag across the work order, its schedule,
// its roster and every task
func (s *WorkOrderService) SetActive(workOrderID uuid.UUID, active bool) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		workOrder, err := s.getWorkOrder(tx, workOrderID)
		if err != nil {
			return err
		}
		workOrder.Active = active
		if err := s.workOrderRepo.WithTx(tx).Update(workOrder); err != nil {
			return fmt.Errorf("failed to update work order: %w", err)
		}
		if err := s.scheduleRepo.WithTx(tx).SetActive(workOrderID, active); err != nil {
			return fmt.Errorf("failed to update schedule: %w", err)
		}
		if err := s.assigneeRepo.WithTx(tx).SetActive(workOrderID, active); err != nil {
			return fmt.Errorf("failed to update assignee roster: %w", err)
		}
		if err := s.taskRepo.WithTx(tx).SetActive(workOrderID, active); err != nil {
			return fmt.Errorf("failed to update tasks: %w", err)
		}
		return nil
	})
	return wrapTxError(err)
}

// SetOverridePermission updates the override-permission flag
func (s *WorkOrderService) SetOverridePermission(workOrderID uuid.UUID, allowed bool) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		workOrder, err := s.getWorkOrder(tx, workOrderID)
		if err != nil {
			return err
		}
		workOrder.OverridePermission = allowed
		if err := s.workOrderRepo.WithTx(tx).Update(workOrder); err != nil {
			return fmt.Errorf("failed to update work order: %w", err)
		}
		return nil
	})
	return wrapTxError(err)
}

// GetByID retrieves a work order with its schedule and roster summarized
func (s *WorkOrderService) GetByID(workOrderID uuid.UUID) (*WorkOrderResponse, error) {
	workOrder, err := s.workOrderRepo.GetWithAggregate(workOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWorkOrderNotFound
		}
		return nil, apperrors.WrapStorage(err)
	}
	response, err := s.toResponse(workOrder)
	if err != nil {
		return nil, err
	}
	if schedule := workOrder.Schedule; schedule != nil {
		summary := &ScheduleSummary{
			StartDate:           schedule.StartDate,
			StartHour:           schedule.StartHour,
			StartMinute:         schedule.StartMinute,
			EndDate:             schedule.EndDate,
			CleaningValidPeriod: schedule.CleaningValidPeriod,
		}
		if schedule.Frequency != nil {
			summary.FrequencyName = schedule.Frequency.Name
		}
		response.Schedule = summary
	}
	if assignee := workOrder.Assignee; assignee != nil {
		roster := &RosterSummary{
			Cleaners:   len(assignee.Cleaners),
			Inspectors: len(assignee.Inspectors),
		}
		for _, team := range assignee.Teams {
			roster.Teams = append(roster.Teams, team.Name)
		}
		response.Roster = roster
	}
	return response, nil
}

// generateTasks expands the schedule window and materializes tasks for the
// work order's pairing. A non-nil from narrows expansion to the delta past
// the latest existing occurrence; existing occurrences are filtered out so
// the unique occurrence index never trips on regeneration.
func (s *WorkOrderService) generateTasks(tx *gorm.DB, workOrder *models.WorkOrder, schedule *models.WorkOrderSchedule, from *time.Time) error {
	frequency, err := s.frequencyRepo.WithTx(tx).GetByID(*schedule.FrequencyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrFrequencyNotFound
		}
		return fmt.Errorf("failed to load frequency: %w", err)
	}

	start, end := scheduleWindow(schedule)
	if from != nil {
		start = *from
	}

	timestamps, err := scheduler.Expand(start, end, *frequency)
	if err != nil {
		return err
	}
	if from != nil {
		filtered := timestamps[:0]
		for _, ts := range timestamps {
			if ts.After(*from) {
				filtered = append(filtered, ts)
			}
		}
		timestamps = filtered
	}

	attIDs := []uuid.UUID{}
	if workOrder.AssetTaskTypeID != nil {
		attIDs = append(attIDs, *workOrder.AssetTaskTypeID)
	} else {
		existing, err := s.taskRepo.WithTx(tx).DistinctAssetTaskTypeIDs(workOrder.ID)
		if err != nil {
			return fmt.Errorf("failed to resolve asset task types: %w", err)
		}
		attIDs = existing
	}
	if len(attIDs) == 0 {
		return apperrors.NewPreconditionError("work order has no asset task type to generate tasks for")
	}

	taskRepo := s.taskRepo.WithTx(tx)
	attRepo := s.attRepo.WithTx(tx)
	for _, attID := range attIDs {
		att, err := attRepo.GetByID(attID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrAssetTaskTypeNotFound
			}
			return fmt.Errorf("failed to load asset task type: %w", err)
		}
		tasks := scheduler.BuildTasks(workOrder.ID, att.AssetID, att.RoomID, att.ID,
			timestamps, *schedule.CleaningValidPeriod, false)
		if err := taskRepo.CreateInBatches(tasks, s.batchSize); err != nil {
			return fmt.Errorf("failed to materialize tasks: %w", err)
		}
	}

	return attRepo.SetMssActive(attIDs, true)
}

// getWorkOrder loads a work order inside the transaction, mapping the gorm
// not-found error to the domain error
func (s *WorkOrderService) getWorkOrder(tx *gorm.DB, id uuid.UUID) (*models.WorkOrder, error) {
	workOrder, err := s.workOrderRepo.WithTx(tx).GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWorkOrderNotFound
		}
		return nil, fmt.Errorf("failed to load work order: %w", err)
	}
	return workOrder, nil
}

func (s *WorkOrderService) getSchedule(tx *gorm.DB, workOrderID uuid.UUID) (*models.WorkOrderSchedule, error) {
	schedule, err := s.scheduleRepo.WithTx(tx).GetByWorkOrderID(workOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	return schedule, nil
}

// rosterComplete reports whether the work order has at least one cleaner and
// one inspector assigned
func (s *WorkOrderService) rosterComplete(tx *gorm.DB, workOrderID uuid.UUID) (bool, error) {
	assignee, err := s.assigneeRepo.WithTx(tx).GetByWorkOrderID(workOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load assignee roster: %w", err)
	}
	return len(assignee.Cleaners) > 0 && len(assignee.Inspectors) > 0, nil
}

// startOfToday returns midnight of the current facility day; deadlines at or
// past it count as not yet elapsed
func (s *WorkOrderService) startOfToday() time.Time {
	now := s.clock.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *WorkOrderService) toResponse(workOrder *models.WorkOrder) (*WorkOrderResponse, error) {
	count, err := s.taskRepo.CountByWorkOrderID(workOrder.ID)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return &WorkOrderResponse{
		ID:                 workOrder.ID,
		Name:               workOrder.Name,
		Status:             workOrder.Status,
		Active:             workOrder.Active,
		OverridePermission: workOrder.OverridePermission,
		TaskCount:          count,
		CreatedAt:          workOrder.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          workOrder.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// wrapTxError passes domain errors through untouched and wraps everything
// else as a retryable storage failure
func wrapTxError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsConfiguration(err) ||
		apperrors.IsNotFound(err) ||
		apperrors.IsPrecondition(err) ||
		apperrors.IsAlreadyExists(err) ||
		apperrors.IsValidation(err) {
		return err
	}
	return apperrors.WrapStorage(err)
}

// memberIDs returns the deduplicated user ids across the given member sets
func memberIDs(sets ...[]models.Member) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, set := range sets {
		for _, m := range set {
			if _, ok := seen[m.ID]; ok {
				continue
			}
			seen[m.ID] = struct{}{}
			ids = append(ids, m.ID)
		}
	}
	return ids
}
