package service

import (
	"time"

	"facility-cleaning-backend/internal/database/models"
)

// generationReadiness is the explicit transition table deciding when task
// generation may fire. Each field tracks one configuration piece a work
// order acquires on its way from created to generated; the combination is
// checked as a whole instead of through ordered conditionals, so adding a
// piece cannot silently change which edits trigger generation.
type generationReadiness struct {
	HasFrequency   bool
	HasStartDate   bool
	HasEndDate     bool
	HasValidPeriod bool
	HasPairing     bool
	HasRoster      bool
}

// readinessOf derives the table row for a work order's current configuration
func readinessOf(workOrder *models.WorkOrder, schedule *models.WorkOrderSchedule, rosterComplete bool) generationReadiness {
	r := generationReadiness{
		HasPairing: workOrder.AssetTaskTypeID != nil,
		HasRoster:  rosterComplete,
	}
	if schedule != nil {
		r.HasFrequency = schedule.FrequencyID != nil
		r.HasStartDate = schedule.StartDate != nil
		r.HasEndDate = schedule.EndDate != nil
		r.HasValidPeriod = schedule.CleaningValidPeriod != nil && *schedule.CleaningValidPeriod > 0
	}
	return r
}

// CanGenerate reports whether every configuration piece is in place
func (r generationReadiness) CanGenerate() bool {
	return r.HasFrequency && r.HasStartDate && r.HasEndDate && r.HasValidPeriod && r.HasPairing && r.HasRoster
}

// MissingStep names the first absent configuration piece, for routing the
// caller to the right configuration step
func (r generationReadiness) MissingStep() string {
	switch {
	case !r.HasRoster:
		return "roster"
	case !r.HasFrequency:
		return "frequency"
	case !r.HasStartDate:
		return "start date"
	case !r.HasEndDate:
		return "end date"
	case !r.HasValidPeriod:
		return "cleaning valid period"
	case !r.HasPairing:
		return "asset task type"
	}
	return ""
}

// scheduleComplete reports whether every schedule piece required for
// generation is set, independent of roster and pairing
func scheduleComplete(schedule *models.WorkOrderSchedule) bool {
	return schedule != nil &&
		schedule.FrequencyID != nil &&
		schedule.StartDate != nil &&
		schedule.EndDate != nil &&
		schedule.CleaningValidPeriod != nil && *schedule.CleaningValidPeriod > 0
}

// scheduleWindow composes the concrete expansion range from the schedule's
// incremental fields. StartHour/StartMinute override the start date's clock
// when set.
func scheduleWindow(schedule *models.WorkOrderSchedule) (start, end time.Time) {
	start = *schedule.StartDate
	hour, minute := start.Hour(), start.Minute()
	if schedule.StartHour != nil {
		hour = *schedule.StartHour
	}
	if schedule.StartMinute != nil {
		minute = *schedule.StartMinute
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), hour, minute, 0, 0, start.Location())
	end = *schedule.EndDate
	return start, end
}
