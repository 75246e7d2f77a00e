package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"facility-cleaning-backend/internal/config"
	"facility-cleaning-backend/internal/database"
	"facility-cleaning-backend/internal/database/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type FrequencyData struct {
	Name            string `yaml:"name"`
	Interval        int    `yaml:"interval"`
	Unit            string `yaml:"unit"`
	ExcludeWeekends bool   `yaml:"exclude_weekends,omitempty"`
	ValidStartHour  *int   `yaml:"valid_start_hour,omitempty"`
	ValidStopHour   *int   `yaml:"valid_stop_hour,omitempty"`
}

type EvidenceLevelData struct {
	Name      string `yaml:"name"`
	MinImages int    `yaml:"min_images"`
	MaxImages int    `yaml:"max_images"`
}

type RoomData struct {
	Name  string `yaml:"name"`
	Floor string `yaml:"floor,omitempty"`
}

type AssetData struct {
	Name     string `yaml:"name"`
	RoomName string `yaml:"room_name"`
}

type AssetTaskTypeData struct {
	RoomName      string `yaml:"room_name"`
	AssetName     string `yaml:"asset_name"`
	CleaningType  string `yaml:"cleaning_type"`
	FrequencyName string `yaml:"frequency_name"`
}

type TeamData struct {
	Name string `yaml:"name"`
}

type MemberData struct {
	FullName string `yaml:"full_name"`
	Email    string `yaml:"email"`
	Role     string `yaml:"role"`
	TeamName string `yaml:"team_name,omitempty"`
}

type CatalogFile struct {
	Frequencies    []FrequencyData     `yaml:"frequencies"`
	EvidenceLevels []EvidenceLevelData `yaml:"evidence_levels"`
	Rooms          []RoomData          `yaml:"rooms"`
	Assets         []AssetData         `yaml:"assets"`
	AssetTaskTypes []AssetTaskTypeData `yaml:"asset_task_types"`
}

type StaffFile struct {
	Teams   []TeamData   `yaml:"teams"`
	Members []MemberData `yaml:"members"`
}

func main() {
	log.Println("Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("Initial data loaded successfully")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel: logger.Silent, // suppress SQL noise and "record not found" during loading
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	var catalog CatalogFile
	if err := readYAML(filepath.Join(dataDir, "catalog.yaml"), &catalog); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	var staff StaffFile
	if err := readYAML(filepath.Join(dataDir, "staff.yaml"), &staff); err != nil {
		return fmt.Errorf("failed to load staff: %w", err)
	}

	// Frequencies first, the catalog references them by name
	freqMap := make(map[string]*models.Frequency)
	freqCreated := 0
	for _, data := range catalog.Frequencies {
		freq, created, err := createFrequency(db, data)
		if err != nil {
			return fmt.Errorf("failed to create frequency %s: %w", data.Name, err)
		}
		freqMap[data.Name] = freq
		if created {
			freqCreated++
		}
	}
	log.Printf("Frequencies: %d created, %d total", freqCreated, len(catalog.Frequencies))

	levelCreated := 0
	for _, data := range catalog.EvidenceLevels {
		created, err := createEvidenceLevel(db, data)
		if err != nil {
			return fmt.Errorf("failed to create evidence level %s: %w", data.Name, err)
		}
		if created {
			levelCreated++
		}
	}
	log.Printf("Evidence levels: %d created, %d total", levelCreated, len(catalog.EvidenceLevels))

	roomMap := make(map[string]*models.Room)
	roomCreated := 0
	for _, data := range catalog.Rooms {
		room, created, err := createRoom(db, data)
		if err != nil {
			return fmt.Errorf("failed to create room %s: %w", data.Name, err)
		}
		roomMap[data.Name] = room
		if created {
			roomCreated++
		}
	}
	log.Printf("Rooms: %d created, %d total", roomCreated, len(catalog.Rooms))

	assetMap := make(map[string]*models.Asset)
	assetCreated := 0
	for _, data := range catalog.Assets {
		asset, created, err := createAsset(db, data, roomMap)
		if err != nil {
			return fmt.Errorf("failed to create asset %s: %w", data.Name, err)
		}
		assetMap[data.RoomName+"/"+data.Name] = asset
		if created {
			assetCreated++
		}
	}
	log.Printf("Assets: %d created, %d total", assetCreated, len(catalog.Assets))

	attCreated := 0
	for _, data := range catalog.AssetTaskTypes {
		created, err := createAssetTaskType(db, data, roomMap, assetMap, freqMap)
		if err != nil {
			return fmt.Errorf("failed to create asset task type %s/%s: %w", data.AssetName, data.CleaningType, err)
		}
		if created {
			attCreated++
		}
	}
	log.Printf("Asset task types: %d created, %d total", attCreated, len(catalog.AssetTaskTypes))

	teamMap := make(map[string]*models.Team)
	teamCreated := 0
	for _, data := range staff.Teams {
		team, created, err := createTeam(db, data)
		if err != nil {
			return fmt.Errorf("failed to create team %s: %w", data.Name, err)
		}
		teamMap[data.Name] = team
		if created {
			teamCreated++
		}
	}
	log.Printf("Teams: %d created, %d total", teamCreated, len(staff.Teams))

	memberCreated := 0
	for _, data := range staff.Members {
		created, err := createMember(db, data, teamMap)
		if err != nil {
			return fmt.Errorf("failed to create member %s: %w", data.Email, err)
		}
		if created {
			memberCreated++
		}
	}
	log.Printf("Members: %d created, %d total", memberCreated, len(staff.Members))

	return nil
}

func readYAML(path string, out interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Skipping %s: file not found", path)
			return nil
		}
		return err
	}
	return yaml.Unmarshal(raw, out)
}

// dayStepFor precomputes the day step for units that walk by days
func dayStepFor(unit models.FrequencyUnit, interval int) *int {
	var step int
	switch unit {
	case models.FrequencyUnitDaily:
		step = interval
	case models.FrequencyUnitWeekly:
		step = interval * 7
	case models.FrequencyUnitYearly:
		step = interval * 365
	default:
		return nil
	}
	return &step
}

func createFrequency(db *gorm.DB, data FrequencyData) (*models.Frequency, bool, error) {
	var existing models.Frequency
	err := db.First(&existing, "name = ?", data.Name).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	unit := models.FrequencyUnit(data.Unit)
	if !unit.IsValid() {
		return nil, false, fmt.Errorf("invalid unit %q", data.Unit)
	}
	freq := &models.Frequency{
		Name:            data.Name,
		Interval:        data.Interval,
		Unit:            unit,
		DayStep:         dayStepFor(unit, data.Interval),
		ExcludeWeekends: data.ExcludeWeekends,
		ValidStartHour:  data.ValidStartHour,
		ValidStopHour:   data.ValidStopHour,
	}
	if err := db.Create(freq).Error; err != nil {
		return nil, false, err
	}
	return freq, true, nil
}

func createEvidenceLevel(db *gorm.DB, data EvidenceLevelData) (bool, error) {
	var existing models.EvidenceLevel
	err := db.First(&existing, "name = ?", data.Name).Error
	if err == nil {
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}
	level := &models.EvidenceLevel{Name: data.Name, MinImages: data.MinImages, MaxImages: data.MaxImages}
	return true, db.Create(level).Error
}

func createRoom(db *gorm.DB, data RoomData) (*models.Room, bool, error) {
	var existing models.Room
	err := db.First(&existing, "name = ?", data.Name).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}
	room := &models.Room{Name: data.Name, Floor: data.Floor, Active: true}
	if err := db.Create(room).Error; err != nil {
		return nil, false, err
	}
	return room, true, nil
}

func createAsset(db *gorm.DB, data AssetData, roomMap map[string]*models.Room) (*models.Asset, bool, error) {
	room, ok := roomMap[data.RoomName]
	if !ok {
		return nil, false, fmt.Errorf("unknown room %q", data.RoomName)
	}
	var existing models.Asset
	err := db.First(&existing, "name = ? AND room_id = ?", data.Name, room.ID).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}
	asset := &models.Asset{Name: data.Name, RoomID: room.ID, Active: true}
	if err := db.Create(asset).Error; err != nil {
		return nil, false, err
	}
	return asset, true, nil
}

func createAssetTaskType(db *gorm.DB, data AssetTaskTypeData, roomMap map[string]*models.Room, assetMap map[string]*models.Asset, freqMap map[string]*models.Frequency) (bool, error) {
	room, ok := roomMap[data.RoomName]
	if !ok {
		return false, fmt.Errorf("unknown room %q", data.RoomName)
	}
	asset, ok := assetMap[data.RoomName+"/"+data.AssetName]
	if !ok {
		return false, fmt.Errorf("unknown asset %q in room %q", data.AssetName, data.RoomName)
	}
	freq, ok := freqMap[data.FrequencyName]
	if !ok {
		return false, fmt.Errorf("unknown frequency %q", data.FrequencyName)
	}

	var existing models.AssetTaskType
	err := db.First(&existing, "asset_id = ? AND cleaning_type = ?", asset.ID, data.CleaningType).Error
	if err == nil {
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}
	att := &models.AssetTaskType{
		RoomID:       room.ID,
		AssetID:      asset.ID,
		CleaningType: data.CleaningType,
		FrequencyID:  freq.ID,
		Active:       true,
	}
	return true, db.Create(att).Error
}

func createTeam(db *gorm.DB, data TeamData) (*models.Team, bool, error) {
	var existing models.Team
	err := db.First(&existing, "name = ?", data.Name).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}
	team := &models.Team{Name: data.Name, Active: true}
	if err := db.Create(team).Error; err != nil {
		return nil, false, err
	}
	return team, true, nil
}

func createMember(db *gorm.DB, data MemberData, teamMap map[string]*models.Team) (bool, error) {
	var existing models.Member
	err := db.First(&existing, "email = ?", data.Email).Error
	if err == nil {
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}

	role := models.MemberRole(data.Role)
	if !role.IsValid() {
		return false, fmt.Errorf("invalid role %q", data.Role)
	}
	member := &models.Member{
		FullName: data.FullName,
		Email:    data.Email,
		Role:     role,
		Active:   true,
	}
	if data.TeamName != "" {
		team, ok := teamMap[data.TeamName]
		if !ok {
			return false, fmt.Errorf("unknown team %q", data.TeamName)
		}
		member.TeamID = &team.ID
	}
	return true, db.Create(member).Error
}
