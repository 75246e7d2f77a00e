package service

import (
	"testing"
	"time"

	"facility-cleaning-backend/internal/database/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func completeSchedule() *models.WorkOrderSchedule {
	frequencyID := uuid.New()
	startDate := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	validPeriod := 24
	return &models.WorkOrderSchedule{
		FrequencyID:         &frequencyID,
		StartDate:           &startDate,
		EndDate:             &endDate,
		CleaningValidPeriod: &validPeriod,
	}
}

func pairedWorkOrder() *models.WorkOrder {
	attID := uuid.New()
	return &models.WorkOrder{AssetTaskTypeID: &attID}
}

func TestReadinessComplete(t *testing.T) {
	r := readinessOf(pairedWorkOrder(), completeSchedule(), true)
	assert.True(t, r.CanGenerate())
	assert.Empty(t, r.MissingStep())
}

func TestReadinessEachMissingPieceBlocksGeneration(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(workOrder *models.WorkOrder, schedule *models.WorkOrderSchedule)
		roster      bool
		missingStep string
	}{
		{
			name:        "no roster",
			mutate:      func(_ *models.WorkOrder, _ *models.WorkOrderSchedule) {},
			roster:      false,
			missingStep: "roster",
		},
		{
			name: "no frequency",
			mutate: func(_ *models.WorkOrder, s *models.WorkOrderSchedule) {
				s.FrequencyID = nil
			},
			roster:      true,
			missingStep: "frequency",
		},
		{
			name: "no start date",
			mutate: func(_ *models.WorkOrder, s *models.WorkOrderSchedule) {
				s.StartDate = nil
			},
			roster:      true,
			missingStep: "start date",
		},
		{
			name: "no end date",
			mutate: func(_ *models.WorkOrder, s *models.WorkOrderSchedule) {
				s.EndDate = nil
			},
			roster:      true,
			missingStep: "end date",
		},
		{
			name: "zero valid period",
			mutate: func(_ *models.WorkOrder, s *models.WorkOrderSchedule) {
				zero := 0
				s.CleaningValidPeriod = &zero
			},
			roster:      true,
			missingStep: "cleaning valid period",
		},
		{
			name: "no pairing",
			mutate: func(w *models.WorkOrder, _ *models.WorkOrderSchedule) {
				w.AssetTaskTypeID = nil
			},
			roster:      true,
			missingStep: "asset task type",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			workOrder := pairedWorkOrder()
			schedule := completeSchedule()
			tc.mutate(workOrder, schedule)

			r := readinessOf(workOrder, schedule, tc.roster)
			assert.False(t, r.CanGenerate())
			assert.Equal(t, tc.missingStep, r.MissingStep())
		})
	}
}

func TestReadinessNilSchedule(t *testing.T) {
	r := readinessOf(pairedWorkOrder(), nil, true)
	assert.False(t, r.CanGenerate())
}

func TestScheduleWindowClockOverride(t *testing.T) {
	schedule := completeSchedule()
	hour, minute := 14, 30
	schedule.StartHour = &hour
	schedule.StartMinute = &minute

	start, end := scheduleWindow(schedule)
	assert.Equal(t, time.Date(2025, time.March, 3, 14, 30, 0, 0, time.UTC), start)
	assert.Equal(t, *schedule.EndDate, end)
}

func TestScheduleWindowWithoutOverrideKeepsStartClock(t *testing.T) {
	schedule := completeSchedule()

	start, _ := scheduleWindow(schedule)
	assert.Equal(t, *schedule.StartDate, start)
}
