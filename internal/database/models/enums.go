package models

// FrequencyUnit defines the granularity of a recurrence rule
type FrequencyUnit string

const (
	FrequencyUnitHourly  FrequencyUnit = "hourly"
	FrequencyUnitDaily   FrequencyUnit = "daily"
	FrequencyUnitWeekly  FrequencyUnit = "weekly"
	FrequencyUnitMonthly FrequencyUnit = "monthly"
	FrequencyUnitYearly  FrequencyUnit = "yearly"
)

// IsValid checks if the FrequencyUnit is valid
func (u FrequencyUnit) IsValid() bool {
	switch u {
	case FrequencyUnitHourly, FrequencyUnitDaily, FrequencyUnitWeekly, FrequencyUnitMonthly, FrequencyUnitYearly:
		return true
	}
	return false
}

// UsesDayStep reports whether the unit advances by a precomputed day step.
// Hourly walks within valid-hour windows and monthly advances by calendar
// months, so neither carries a day step.
func (u FrequencyUnit) UsesDayStep() bool {
	switch u {
	case FrequencyUnitDaily, FrequencyUnitWeekly, FrequencyUnitYearly:
		return true
	}
	return false
}

// MemberRole defines the cleaning role of a staff member
type MemberRole string

const (
	MemberRoleCleaner   MemberRole = "cleaner"
	MemberRoleInspector MemberRole = "inspector"
)

// IsValid checks if the MemberRole is valid
func (r MemberRole) IsValid() bool {
	switch r {
	case MemberRoleCleaner, MemberRoleInspector:
		return true
	}
	return false
}

// WorkOrderStatus defines the configuration lifecycle of a work order
type WorkOrderStatus string

const (
	WorkOrderStatusCreated    WorkOrderStatus = "created"
	WorkOrderStatusConfigured WorkOrderStatus = "configured"
	WorkOrderStatusGenerated  WorkOrderStatus = "generated"
)

// IsValid checks if the WorkOrderStatus is valid
func (s WorkOrderStatus) IsValid() bool {
	switch s {
	case WorkOrderStatusCreated, WorkOrderStatusConfigured, WorkOrderStatusGenerated:
		return true
	}
	return false
}
