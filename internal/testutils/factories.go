package testutils

import (
	"time"

	"facility-cleaning-backend/internal/database/models"

	"github.com/google/uuid"
)

// FrequencyFactory provides methods to create test Frequency data
type FrequencyFactory struct{}

// NewFrequencyFactory creates a new FrequencyFactory
func NewFrequencyFactory() *FrequencyFactory {
	return &FrequencyFactory{}
}

// Create creates a daily test Frequency with default values
func (f *FrequencyFactory) Create() *models.Frequency {
	dayStep := 1
	return &models.Frequency{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:     "Daily",
		Interval: 1,
		Unit:     models.FrequencyUnitDaily,
		DayStep:  &dayStep,
	}
}

// Hourly creates an hourly frequency bounded by the given hour window
func (f *FrequencyFactory) Hourly(interval, startHour, stopHour int) *models.Frequency {
	freq := f.Create()
	freq.Name = "Hourly"
	freq.Interval = interval
	freq.Unit = models.FrequencyUnitHourly
	freq.DayStep = nil
	freq.ValidStartHour = &startHour
	freq.ValidStopHour = &stopHour
	return freq
}

// WithDayStep creates a frequency stepping the given number of days
func (f *FrequencyFactory) WithDayStep(unit models.FrequencyUnit, interval, dayStep int) *models.Frequency {
	freq := f.Create()
	freq.Name = string(unit)
	freq.Interval = interval
	freq.Unit = unit
	freq.DayStep = &dayStep
	return freq
}

// Monthly creates a monthly frequency
func (f *FrequencyFactory) Monthly(interval int) *models.Frequency {
	freq := f.Create()
	freq.Name = "Monthly"
	freq.Interval = interval
	freq.Unit = models.FrequencyUnitMonthly
	freq.DayStep = nil
	return freq
}

// ExcludingWeekends creates a daily frequency that skips weekends
func (f *FrequencyFactory) ExcludingWeekends() *models.Frequency {
	freq := f.Create()
	freq.ExcludeWeekends = true
	return freq
}

// RoomFactory provides methods to create test Room data
type RoomFactory struct{}

// NewRoomFactory creates a new RoomFactory
func NewRoomFactory() *RoomFactory {
	return &RoomFactory{}
}

// Create creates a test Room with default values
func (f *RoomFactory) Create() *models.Room {
	return &models.Room{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:   "Operating Room 1",
		Floor:  "2",
		Active: true,
	}
}

// AssetFactory provides methods to create test Asset data
type AssetFactory struct{}

// NewAssetFactory creates a new AssetFactory
func NewAssetFactory() *AssetFactory {
	return &AssetFactory{}
}

// Create creates a test Asset in the given room
func (f *AssetFactory) Create(roomID uuid.UUID) *models.Asset {
	return &models.Asset{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		RoomID: roomID,
		Name:   "Surgical Table",
		Active: true,
	}
}

// AssetTaskTypeFactory provides methods to create test AssetTaskType data
type AssetTaskTypeFactory struct{}

// NewAssetTaskTypeFactory creates a new AssetTaskTypeFactory
func NewAssetTaskTypeFactory() *AssetTaskTypeFactory {
	return &AssetTaskTypeFactory{}
}

// Create creates a test AssetTaskType pairing the given asset with a
// cleaning type
func (f *AssetTaskTypeFactory) Create(roomID, assetID, frequencyID uuid.UUID) *models.AssetTaskType {
	return &models.AssetTaskType{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		RoomID:       roomID,
		AssetID:      assetID,
		CleaningType: "Disinfection",
		FrequencyID:  frequencyID,
		Active:       true,
	}
}

// EvidenceLevelFactory provides methods to create test EvidenceLevel data
type EvidenceLevelFactory struct{}

// NewEvidenceLevelFactory creates a new EvidenceLevelFactory
func NewEvidenceLevelFactory() *EvidenceLevelFactory {
	return &EvidenceLevelFactory{}
}

// Create creates a test EvidenceLevel requiring the given image minimum
func (f *EvidenceLevelFactory) Create(minImages int) *models.EvidenceLevel {
	return &models.EvidenceLevel{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:      "Standard",
		MinImages: minImages,
		MaxImages: minImages + 3,
	}
}

// TeamFactory provides methods to create test Team data
type TeamFactory struct{}

// NewTeamFactory creates a new TeamFactory
func NewTeamFactory() *TeamFactory {
	return &TeamFactory{}
}

// Create creates a test Team with default values
func (f *TeamFactory) Create() *models.Team {
	return &models.Team{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:   "Night Shift Crew",
		Active: true,
	}
}

// MemberFactory provides methods to create test Member data
type MemberFactory struct{}

// NewMemberFactory creates a new MemberFactory
func NewMemberFactory() *MemberFactory {
	return &MemberFactory{}
}

// Create creates a test Member with default values. Emails embed part of the
// uuid to keep the unique index happy across factory calls.
func (f *MemberFactory) Create() *models.Member {
	id := uuid.New()
	return &models.Member{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		FullName: "Jamie Fields",
		Email:    "jamie." + id.String()[:8] + "@test.com",
		Role:     models.MemberRoleCleaner,
		Active:   true,
	}
}

// WithRole sets a custom role for the member
func (f *MemberFactory) WithRole(role models.MemberRole) *models.Member {
	member := f.Create()
	member.Role = role
	return member
}

// WithTeam sets the team ID for the member
func (f *MemberFactory) WithTeam(teamID uuid.UUID, role models.MemberRole) *models.Member {
	member := f.Create()
	member.TeamID = &teamID
	member.Role = role
	return member
}

// FactorySet bundles all factories for convenient test access
type FactorySet struct {
	Frequency     *FrequencyFactory
	Room          *RoomFactory
	Asset         *AssetFactory
	AssetTaskType *AssetTaskTypeFactory
	EvidenceLevel *EvidenceLevelFactory
	Team          *TeamFactory
	Member        *MemberFactory
}

// NewFactorySet creates a FactorySet with every factory initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Frequency:     NewFrequencyFactory(),
		Room:          NewRoomFactory(),
		Asset:         NewAssetFactory(),
		AssetTaskType: NewAssetTaskTypeFactory(),
		EvidenceLevel: NewEvidenceLevelFactory(),
		Team:          NewTeamFactory(),
		Member:        NewMemberFactory(),
	}
}
