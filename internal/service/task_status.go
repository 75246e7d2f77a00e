package service

import (
	"time"

	"facility-cleaning-backend/internal/database/models"
)

// TaskStatus is the live completion state of a cleaning task, always
// recomputed from the persisted instance plus the current time, never stored
type TaskStatus string

const (
	TaskStatusPending          TaskStatus = "pending"
	TaskStatusOverdue          TaskStatus = "overdue"
	TaskStatusAwaitingApproval TaskStatus = "awaiting_approval"
	TaskStatusCompleted        TaskStatus = "completed"
)

// EvaluateTaskStatus derives a task's status at the given instant.
//
// Never-cleaned tasks are pending until their deadline passes. Cleaned tasks
// stay overdue until both the done and approved flags close the loop, even
// when the deadline has not passed yet. That conflates "needs approval" with
// "overdue"; it matches the observed production behavior and is kept as is
// (TaskStatusAwaitingApproval exists for consumers but is never returned here).
func EvaluateTaskStatus(task *models.CleaningTask, now time.Time) TaskStatus {
	if task.LastCleaned == nil {
		if now.After(task.ValidCleaningPeriod) {
			return TaskStatusOverdue
		}
		return TaskStatusPending
	}
	if !task.IsDone || !task.IsApproved {
		return TaskStatusOverdue
	}
	return TaskStatusCompleted
}
