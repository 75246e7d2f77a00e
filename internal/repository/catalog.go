package repository

import (
	"facility-cleaning-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssetTaskTypeRepository handles database operations for asset task types
type AssetTaskTypeRepository struct {
	db *gorm.DB
}

// NewAssetTaskTypeRepository creates a new asset task type repository
func NewAssetTaskTypeRepository(db *gorm.DB) *AssetTaskTypeRepository {
	return &AssetTaskTypeRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *AssetTaskTypeRepository) WithTx(tx *gorm.DB) *AssetTaskTypeRepository {
	return &AssetTaskTypeRepository{db: tx}
}

// GetByID retrieves an asset task type by ID
func (r *AssetTaskTypeRepository) GetByID(id uuid.UUID) (*models.AssetTaskType, error) {
	var att models.AssetTaskType
	err := r.db.First(&att, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

// GetByIDs retrieves asset task types by IDs
func (r *AssetTaskTypeRepository) GetByIDs(ids []uuid.UUID) ([]models.AssetTaskType, error) {
	var atts []models.AssetTaskType
	err := r.db.Where("id IN ?", ids).Find(&atts).Error
	if err != nil {
		return nil, err
	}
	return atts, nil
}

// SetMssActive flips the scheduling marker on the given asset task types
func (r *AssetTaskTypeRepository) SetMssActive(ids []uuid.UUID, active bool) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.AssetTaskType{}).
		Where("id IN ?", ids).
		Update("mss_active", active).Error
}

// FrequencyRepository handles database operations for recurrence rules
type FrequencyRepository struct {
	db *gorm.DB
}

// NewFrequencyRepository creates a new frequency repository
func NewFrequencyRepository(db *gorm.DB) *FrequencyRepository {
	return &FrequencyRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *FrequencyRepository) WithTx(tx *gorm.DB) *FrequencyRepository {
	return &FrequencyRepository{db: tx}
}

// Create creates a new frequency
func (r *FrequencyRepository) Create(frequency *models.Frequency) error {
	return r.db.Create(frequency).Error
}

// GetByID retrieves a frequency by ID
func (r *FrequencyRepository) GetByID(id uuid.UUID) (*models.Frequency, error) {
	var frequency models.Frequency
	err := r.db.First(&frequency, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &frequency, nil
}

// EvidenceLevelRepository handles database operations for evidence levels
type EvidenceLevelRepository struct {
	db *gorm.DB
}

// NewEvidenceLevelRepository creates a new evidence level repository
func NewEvidenceLevelRepository(db *gorm.DB) *EvidenceLevelRepository {
	return &EvidenceLevelRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *EvidenceLevelRepository) WithTx(tx *gorm.DB) *EvidenceLevelRepository {
	return &EvidenceLevelRepository{db: tx}
}

// GetByID retrieves an evidence level by ID
func (r *EvidenceLevelRepository) GetByID(id uuid.UUID) (*models.EvidenceLevel, error) {
	var level models.EvidenceLevel
	err := r.db.First(&level, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &level, nil
}
