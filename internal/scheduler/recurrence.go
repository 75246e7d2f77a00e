package scheduler

import (
	"time"

	"facility-cleaning-backend/internal/database/models"
	apperrors "facility-cleaning-backend/internal/errors"
)

// Expand walks a cursor from start to end inclusive and returns the ordered
// sequence of occurrence timestamps the frequency rule produces. It is pure
// and deterministic: same inputs, same output, no hidden state.
//
// Weekend exclusion applies to every unit: a cursor landing on Saturday or
// Sunday advances one day without emitting, keeping its clock time. The
// hourly unit additionally resets the clock to start's hour when the daily
// valid-hour window is exhausted; the weekend check runs first on each
// iteration. That ordering is load-bearing and matched by the tests.
func Expand(start, end time.Time, freq models.Frequency) ([]time.Time, error) {
	if err := validateFrequency(freq); err != nil {
		return nil, err
	}

	// An inverted range is a valid empty expansion, not an error.
	if dateAfter(start, end) {
		return []time.Time{}, nil
	}

	if freq.Unit.UsesDayStep() {
		// Fail fast rather than emit a truncated sequence.
		if *freq.DayStep > daySpan(start, end) {
			return nil, apperrors.ErrDayStepExceedsRange
		}
	}

	switch freq.Unit {
	case models.FrequencyUnitHourly:
		return expandHourly(start, end, freq), nil
	case models.FrequencyUnitMonthly:
		return expandMonthly(start, end, freq), nil
	default:
		return expandByDayStep(start, end, *freq.DayStep, freq.ExcludeWeekends), nil
	}
}

func validateFrequency(freq models.Frequency) error {
	if !freq.Unit.IsValid() || freq.Interval < 1 {
		return apperrors.ErrInvalidFrequency
	}
	if freq.Unit.UsesDayStep() && (freq.DayStep == nil || *freq.DayStep < 1) {
		return apperrors.ErrInvalidFrequency
	}
	if freq.ValidStartHour != nil && (*freq.ValidStartHour < 0 || *freq.ValidStartHour > 23) {
		return apperrors.ErrInvalidHourWindow
	}
	if freq.ValidStopHour != nil && (*freq.ValidStopHour < 0 || *freq.ValidStopHour > 23) {
		return apperrors.ErrInvalidHourWindow
	}
	return nil
}

// expandHourly treats the valid-hour window as a daily lane. Stepping starts
// at start's hour; once a step lands past the stop hour the cursor rolls to
// the next day at start's hour and minute. Like the day-step units, only the
// calendar date is compared against end, so an end carrying a midnight clock
// still admits that day's occurrences.
func expandHourly(start, end time.Time, freq models.Frequency) []time.Time {
	stopHour := 23
	if freq.ValidStopHour != nil {
		stopHour = *freq.ValidStopHour
	}

	out := []time.Time{}
	cursor := start
	for !dateAfter(cursor, end) {
		if freq.ExcludeWeekends && isWeekend(cursor) {
			cursor = cursor.AddDate(0, 0, 1)
			continue
		}
		if cursor.Hour() > stopHour {
			cursor = nextDayAt(cursor, start.Hour(), start.Minute())
			continue
		}
		if !cursor.Before(start) {
			out = append(out, cursor)
		}
		cursor = cursor.Add(time.Duration(freq.Interval) * time.Hour)
	}
	return out
}

// expandMonthly emits one occurrence per cycle, advancing the month by the
// interval. Day-of-month overflow follows Go's AddDate normalization
// (Jan 31 + 1 month lands in early March), which is consistent run to run.
func expandMonthly(start, end time.Time, freq models.Frequency) []time.Time {
	out := []time.Time{}
	cursor := start
	for !dateAfter(cursor, end) {
		if freq.ExcludeWeekends && isWeekend(cursor) {
			cursor = cursor.AddDate(0, 0, 1)
			continue
		}
		out = append(out, cursor)
		cursor = cursor.AddDate(0, freq.Interval, 0)
	}
	return out
}

// expandByDayStep covers the daily, weekly and yearly units: one occurrence
// per cycle, advancing by the precomputed day step. Only the calendar date
// is compared against end, so the final occurrence may carry a clock time
// past end's clock but never a later date.
func expandByDayStep(start, end time.Time, step int, excludeWeekends bool) []time.Time {
	out := []time.Time{}
	cursor := start
	for !dateAfter(cursor, end) {
		if excludeWeekends && isWeekend(cursor) {
			cursor = cursor.AddDate(0, 0, 1)
			continue
		}
		out = append(out, cursor)
		cursor = cursor.AddDate(0, 0, step)
	}
	return out
}

// daySpan returns the number of whole calendar days between the dates of
// start and end
func daySpan(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	return int(e.Sub(s).Hours() / 24)
}

// dateAfter reports whether a's calendar date is after b's, ignoring clock time
func dateAfter(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay > by
	}
	if am != bm {
		return am > bm
	}
	return ad > bd
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func nextDayAt(t time.Time, hour, minute int) time.Time {
	n := t.AddDate(0, 0, 1)
	return time.Date(n.Year(), n.Month(), n.Day(), hour, minute, 0, 0, t.Location())
}
