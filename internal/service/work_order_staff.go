package service

import (
	"errors"
	"fmt"

	"facility-cleaning-backend/internal/database/models"
	apperrors "facility-cleaning-backend/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignStaffRequest replaces (not merges) the roster sets it names. Teams
// and cleaners are replaced together because team members fold into the
// cleaner set; inspectors are replaced independently.
type AssignStaffRequest struct {
	TeamIDs      []uuid.UUID `json:"team_ids,omitempty"`
	CleanerIDs   []uuid.UUID `json:"cleaner_ids,omitempty"`
	InspectorIDs []uuid.UUID `json:"inspector_ids,omitempty"`
	SenderID     uuid.UUID   `json:"sender_id,omitempty"`
}

// resolvedRoster is a staff selection flattened into role sets. Team members
// land in the set matching their role; duplicates across teams and direct
// picks are collapsed.
type resolvedRoster struct {
	teams      []models.Team
	cleaners   []models.Member
	inspectors []models.Member
}

// AssignStaff replaces the roster of a work order. Stale notifications of
// users leaving the roster are removed in the same transaction, and only
// members newly added to the roster are notified; when the roster completes
// the last missing configuration piece, task generation fires before commit.
func (s *WorkOrderService) AssignStaff(workOrderID uuid.UUID, req *AssignStaffRequest) error {
	var notifyUsers []uuid.UUID
	var workOrderName string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		workOrder, err := s.getWorkOrder(tx, workOrderID)
		if err != nil {
			return err
		}
		workOrderName = workOrder.Name

		assigneeRepo := s.assigneeRepo.WithTx(tx)
		assignee, err := assigneeRepo.GetByWorkOrderID(workOrderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			assignee = &models.WorkOrderAssignee{WorkOrderID: workOrderID, Active: true}
			if err := assigneeRepo.Create(assignee); err != nil {
				return fmt.Errorf("failed to create assignee roster: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to load assignee roster: %w", err)
		}

		roster, err := s.resolveRoster(tx, req.TeamIDs, req.CleanerIDs, req.InspectorIDs)
		if err != nil {
			return err
		}

		var removedUsers, addedUsers []uuid.UUID
		touchedCleaners := req.TeamIDs != nil || req.CleanerIDs != nil
		if touchedCleaners {
			removedUsers = append(removedUsers, removedFrom(assignee.Cleaners, roster.cleaners)...)
			addedUsers = append(addedUsers, removedFrom(roster.cleaners, assignee.Cleaners)...)
			if err := assigneeRepo.ReplaceTeams(assignee, roster.teams); err != nil {
				return fmt.Errorf("failed to replace teams: %w", err)
			}
			if err := assigneeRepo.ReplaceCleaners(assignee, roster.cleaners); err != nil {
				return fmt.Errorf("failed to replace cleaners: %w", err)
			}
			assignee.Teams = roster.teams
			assignee.Cleaners = roster.cleaners
		}
		if req.InspectorIDs != nil {
			removedUsers = append(removedUsers, removedFrom(assignee.Inspectors, roster.inspectors)...)
			addedUsers = append(addedUsers, removedFrom(roster.inspectors, assignee.Inspectors)...)
			if err := assigneeRepo.ReplaceInspectors(assignee, roster.inspectors); err != nil {
				return fmt.Errorf("failed to replace inspectors: %w", err)
			}
			assignee.Inspectors = roster.inspectors
		}

		if len(removedUsers) > 0 {
			if err := s.notificationRepo.WithTx(tx).DeleteForUsers(workOrderID, removedUsers); err != nil {
				return fmt.Errorf("failed to delete stale notifications: %w", err)
			}
		}

		rosterComplete := len(assignee.Cleaners) > 0 && len(assignee.Inspectors) > 0
		if rosterComplete && workOrder.Status != models.WorkOrderStatusGenerated {
			schedule, err := s.getSchedule(tx, workOrderID)
			if err != nil && !apperrors.IsNotFound(err) {
				return err
			}
			readiness := readinessOf(workOrder, schedule, rosterComplete)
			if readiness.CanGenerate() {
				if err := s.generateTasks(tx, workOrder, schedule, nil); err != nil {
					return err
				}
				workOrder.Status = models.WorkOrderStatusGenerated
				if err := s.workOrderRepo.WithTx(tx).Update(workOrder); err != nil {
					return fmt.Errorf("failed to update work order: %w", err)
				}
			}
		}

		// Staff already on the roster keep their original notification.
		notifyUsers = dedupe(addedUsers)
		return nil
	})
	if err != nil {
		return wrapTxError(err)
	}

	for _, userID := range notifyUsers {
		s.notifier.Notify(userID, req.SenderID, workOrderID,
			fmt.Sprintf("You have been assigned to work order %q", workOrderName))
	}
	return nil
}

// resolveRoster loads the selected teams and members and folds team members
// into the role set matching their member role
func (s *WorkOrderService) resolveRoster(tx *gorm.DB, teamIDs, cleanerIDs, inspectorIDs []uuid.UUID) (*resolvedRoster, error) {
	roster := &resolvedRoster{}
	seenCleaner := make(map[uuid.UUID]struct{})
	seenInspector := make(map[uuid.UUID]struct{})

	addCleaner := func(m models.Member) {
		if _, ok := seenCleaner[m.ID]; ok {
			return
		}
		seenCleaner[m.ID] = struct{}{}
		roster.cleaners = append(roster.cleaners, m)
	}
	addInspector := func(m models.Member) {
		if _, ok := seenInspector[m.ID]; ok {
			return
		}
		seenInspector[m.ID] = struct{}{}
		roster.inspectors = append(roster.inspectors, m)
	}

	teamRepo := s.teamRepo.WithTx(tx)
	for _, teamID := range teamIDs {
		team, err := teamRepo.GetWithMembers(teamID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrTeamNotFound
			}
			return nil, fmt.Errorf("failed to load team: %w", err)
		}
		roster.teams = append(roster.teams, *team)
		for _, member := range team.Members {
			switch member.Role {
			case models.MemberRoleInspector:
				addInspector(member)
			default:
				addCleaner(member)
			}
		}
	}

	memberRepo := s.memberRepo.WithTx(tx)
	if len(cleanerIDs) > 0 {
		members, err := memberRepo.GetByIDs(cleanerIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load cleaners: %w", err)
		}
		if len(members) != len(dedupe(cleanerIDs)) {
			return nil, apperrors.ErrMemberNotFound
		}
		for _, member := range members {
			addCleaner(member)
		}
	}
	if len(inspectorIDs) > 0 {
		members, err := memberRepo.GetByIDs(inspectorIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load inspectors: %w", err)
		}
		if len(members) != len(dedupe(inspectorIDs)) {
			return nil, apperrors.ErrMemberNotFound
		}
		for _, member := range members {
			addInspector(member)
		}
	}

	return roster, nil
}

// removedFrom returns the ids present in before but absent from after
func removedFrom(before, after []models.Member) []uuid.UUID {
	kept := make(map[uuid.UUID]struct{}, len(after))
	for _, m := range after {
		kept[m.ID] = struct{}{}
	}
	var removed []uuid.UUID
	for _, m := range before {
		if _, ok := kept[m.ID]; !ok {
			removed = append(removed, m.ID)
		}
	}
	return removed
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
