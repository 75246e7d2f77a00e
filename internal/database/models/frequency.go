package models

// Frequency represents an immutable recurrence rule for cleaning work.
// DayStep is precomputed at creation time (interval x 1/7/365 for the
// daily/weekly/yearly units) and unused for hourly and monthly units.
// ValidStartHour/ValidStopHour bound the daily window for hourly rules.
type Frequency struct {
	BaseModel
	Name            string        `json:"name" gorm:"size:100;not null" validate:"required,min=1,max=100"`
	Interval        int           `json:"interval" gorm:"not null" validate:"required,min=1"`
	Unit            FrequencyUnit `json:"unit" gorm:"type:varchar(20);not null" validate:"required"`
	DayStep         *int          `json:"day_step,omitempty"`
	ExcludeWeekends bool          `json:"exclude_weekends" gorm:"default:false"`
	ValidStartHour  *int          `json:"valid_start_hour,omitempty" validate:"omitempty,min=0,max=23"`
	ValidStopHour   *int          `json:"valid_stop_hour,omitempty" validate:"omitempty,min=0,max=23"`
}

// TableName returns the table name for Frequency
func (Frequency) TableName() string {
	return "frequencies"
}
