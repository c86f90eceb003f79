package goals

import (
	"errors"

	"github.com/google/uuid"
	"github.com/reet/goalforge-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrRecordNotFound is returned by Store implementations when a goal id
// has no record. The service translates it into the business taxonomy.
var ErrRecordNotFound = errors.New("goal record not found")

// Store is the persistence contract the lifecycle operates against. It
// enforces no business rules.
type Store interface {
	Create(goal *models.Goal) error
	Get(id uuid.UUID) (*models.Goal, error)
	ListByOwner(ownerID uuid.UUID) ([]models.Goal, error)
	DeleteOne(id uuid.UUID) error
	DeleteAllByOwner(ownerID uuid.UUID) error
	SaveBatch(goals []models.Goal) ([]models.Goal, error)
}

type gormStore struct {
	db *gorm.DB
}

// NewStore returns a GORM-backed Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Create(goal *models.Goal) error {
	return s.db.Create(goal).Error
}

func (s *gormStore) Get(id uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.First(&goal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (s *gormStore) ListByOwner(ownerID uuid.UUID) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("owner_id = ?", ownerID).
		Order("display_order ASC").
		Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (s *gormStore) DeleteOne(id uuid.UUID) error {
	result := s.db.Delete(&models.Goal{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *gormStore) DeleteAllByOwner(ownerID uuid.UUID) error {
	return s.db.Delete(&models.Goal{}, "owner_id = ?", ownerID).Error
}

func (s *gormStore) SaveBatch(goals []models.Goal) ([]models.Goal, error) {
	if len(goals) == 0 {
		return goals, nil
	}
	// Upsert so re-imported records replace soft-deleted rows with the
	// same id instead of silently updating nothing
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}
