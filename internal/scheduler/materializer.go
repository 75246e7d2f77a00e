package scheduler

import (
	"time"

	"facility-cleaning-backend/internal/database/models"

	"github.com/google/uuid"
)

// BuildTasks converts expanded occurrence timestamps into CleaningTask rows
// for one asset task type. Every task starts open (not done, not approved,
// never cleaned, active); the exclude flag is passed through so callers can
// mark occurrences that are scheduled but intentionally skipped. Duplicate
// timestamps collapse here so the unique occurrence index never trips on a
// single materialization.
func BuildTasks(workOrderID, assetID, roomID, assetTaskTypeID uuid.UUID, timestamps []time.Time, validPeriodHours int, exclude bool) []models.CleaningTask {
	tasks := make([]models.CleaningTask, 0, len(timestamps))
	seen := make(map[time.Time]struct{}, len(timestamps))

	for _, ts := range timestamps {
		if _, dup := seen[ts]; dup {
			continue
		}
		seen[ts] = struct{}{}

		tasks = append(tasks, models.CleaningTask{
			WorkOrderID:         workOrderID,
			AssetID:             assetID,
			RoomID:              roomID,
			AssetTaskTypeID:     assetTaskTypeID,
			ScheduledDate:       ts,
			ValidCleaningPeriod: ts.Add(time.Duration(validPeriodHours) * time.Hour),
			IsDone:              false,
			IsApproved:          false,
			LastCleaned:         nil,
			Exclude:             exclude,
			Active:              true,
		})
	}
	return tasks
}
