package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Goal struct {
	ID               uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID          *uuid.UUID       `json:"ownerId" gorm:"type:uuid;index"`
	Name             string           `json:"name"`
	ProgressType     ProgressType     `json:"progressType" gorm:"not null"` // dur or cnt
	EstimatedEffort  float64          `json:"estimatedEffort" gorm:"not null;default:0"`
	ProgressCalendar ProgressCalendar `json:"progressCalendar" gorm:"type:text"` // date -> effort
	InvestedEffort   float64          `json:"investedEffort" gorm:"default:0"`
	RemainingEffort  float64          `json:"remainingEffort" gorm:"default:0"`
	StartDate        *time.Time       `json:"startDate"` // nil until started
	Status           Status           `json:"status" gorm:"not null;default:'not_started'"`
	DisplayOrder     int              `json:"displayOrder" gorm:"not null;default:0"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt   `json:"-" gorm:"index"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Goal DTOs
type CreateGoalRequest struct {
	Name            string  `json:"name" validate:"required"`
	ProgressType    string  `json:"progressType" validate:"required"`
	EstimatedEffort float64 `json:"estimatedEffort"`
}

type UpdateGoalRequest struct {
	Name            *string  `json:"name"`
	ProgressType    *string  `json:"progressType"`
	EstimatedEffort *float64 `json:"estimatedEffort"`
}

type AddProgressRequest struct {
	Date   string  `json:"date" validate:"required"`
	Effort float64 `json:"effort"`
}

type ReorderRequest struct {
	GoalIDs []uuid.UUID `json:"goalIds" validate:"required"`
}

type ImportRequest struct {
	Mode  string `json:"mode"` // append or reset
	Goals []Goal `json:"goals"`
}
