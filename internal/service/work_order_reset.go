package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResetScope selects which work orders a reset tears down
type ResetScope struct {
	// WorkOrderIDs limits the reset to the given work orders. Empty means
	// every work order.
	WorkOrderIDs []uuid.UUID `json:"work_order_ids,omitempty"`
}

// ResetResult reports what a reset removed
type ResetResult struct {
	WorkOrdersDeleted int `json:"work_orders_deleted"`
}

// Reset tears down work orders and everything hanging off them: task images,
// tasks, schedule, roster, notifications and finally the work order row. The
// asset task types the deleted tasks covered are flipped back to available.
// The whole teardown runs in one transaction and is idempotent: ids that no
// longer exist are skipped.
func (s *WorkOrderService) Reset(scope *ResetScope) (*ResetResult, error) {
	result := &ResetResult{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		workOrderRepo := s.workOrderRepo.WithTx(tx)

		ids := scope.WorkOrderIDs
		if len(ids) == 0 {
			all, err := workOrderRepo.ListAll()
			if err != nil {
				return fmt.Errorf("failed to list work orders: %w", err)
			}
			for _, workOrder := range all {
				ids = append(ids, workOrder.ID)
			}
		}

		taskRepo := s.taskRepo.WithTx(tx)
		releasedATTs := make(map[uuid.UUID]struct{})

		for _, id := range ids {
			if _, err := workOrderRepo.GetByID(id); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return fmt.Errorf("failed to load work order: %w", err)
			}

			attIDs, err := taskRepo.DistinctAssetTaskTypeIDs(id)
			if err != nil {
				return fmt.Errorf("failed to resolve asset task types: %w", err)
			}
			for _, attID := range attIDs {
				releasedATTs[attID] = struct{}{}
			}

			if err := s.taskImageRepo.WithTx(tx).DeleteByWorkOrderID(id); err != nil {
				return fmt.Errorf("failed to delete task images: %w", err)
			}
			if err := taskRepo.DeleteByWorkOrderID(id); err != nil {
				return fmt.Errorf("failed to delete tasks: %w", err)
			}
			if err := s.scheduleRepo.WithTx(tx).DeleteByWorkOrderID(id); err != nil {
				return fmt.Errorf("failed to delete schedule: %w", err)
			}
			if err := s.assigneeRepo.WithTx(tx).DeleteByWorkOrderID(id); err != nil {
				return fmt.Errorf("failed to delete assignee roster: %w", err)
			}
			if err := s.notificationRepo.WithTx(tx).DeleteByWorkOrderID(id); err != nil {
				return fmt.Errorf("failed to delete notifications: %w", err)
			}
			if err := workOrderRepo.Delete(id); err != nil {
				return fmt.Errorf("failed to delete work order: %w", err)
			}
			result.WorkOrdersDeleted++
		}

		if len(releasedATTs) > 0 {
			released := make([]uuid.UUID, 0, len(releasedATTs))
			for attID := range releasedATTs {
				released = append(released, attID)
			}
			// Pairings covered by a surviving work order stay claimed.
			stillUsed, err := taskRepo.AssetTaskTypesInUse(released)
			if err != nil {
				return fmt.Errorf("failed to check surviving work orders: %w", err)
			}
			for _, attID := range stillUsed {
				delete(releasedATTs, attID)
			}
			released = released[:0]
			for attID := range releasedATTs {
				released = append(released, attID)
			}
			if len(released) > 0 {
				if err := s.attRepo.WithTx(tx).SetMssActive(released, false); err != nil {
					return fmt.Errorf("failed to release asset task types: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, wrapTxError(err)
	}

	s.log.WithField("deleted", result.WorkOrdersDeleted).Info("work order reset completed")
	return result, nil
}
