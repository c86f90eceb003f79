package goals

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reet/goalforge-api/internal/models"
)

const dateLayout = "2006-01-02"

// Import modes.
const (
	ImportModeAppend = "append"
	ImportModeReset  = "reset"
)

// Service owns the goal lifecycle: status transitions, daily-progress
// accounting, and display-order maintenance. The clock is injected so
// "today" can be fixed in tests.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// load fetches a goal, translating a missing record into the business
// taxonomy.
func (s *Service) load(id uuid.UUID) (*models.Goal, error) {
	goal, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, newError(CodeNotFound, "Goal not found")
		}
		return nil, err
	}
	return goal, nil
}

// Create normalizes and persists a new goal: zero invested effort, full
// remaining effort, empty calendar, NOT_STARTED, appended to the end of
// the owner's list.
func (s *Service) Create(goal *models.Goal) (*models.Goal, error) {
	pt, ok := models.NormalizeProgressType(string(goal.ProgressType))
	if !ok {
		return nil, newError(CodeValidation,
			"Invalid progressType: %q (expected %s or %s)",
			goal.ProgressType, models.ProgressDuration, models.ProgressCount)
	}
	if goal.EstimatedEffort < 0 {
		return nil, newError(CodeValidation, "estimatedEffort must not be negative")
	}

	goal.ProgressType = pt
	goal.InvestedEffort = 0
	goal.RemainingEffort = goal.EstimatedEffort
	goal.ProgressCalendar = models.ProgressCalendar{}
	goal.Status = models.StatusNotStarted
	goal.StartDate = nil

	// Append to the end of the owner's current list
	if goal.OwnerID != nil {
		owned, err := s.store.ListByOwner(*goal.OwnerID)
		if err != nil {
			return nil, err
		}
		goal.DisplayOrder = len(owned)
	} else {
		goal.DisplayOrder = 0
	}

	log.Printf("Creating goal %q for owner %v", goal.Name, goal.OwnerID)
	if err := s.store.Create(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Get returns a goal by id.
func (s *Service) Get(id uuid.UUID) (*models.Goal, error) {
	return s.load(id)
}

// List returns the owner's goals ordered by displayOrder.
func (s *Service) List(ownerID uuid.UUID) ([]models.Goal, error) {
	return s.store.ListByOwner(ownerID)
}

// Delete removes a single goal.
func (s *Service) Delete(id uuid.UUID) error {
	if err := s.store.DeleteOne(id); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return newError(CodeNotFound, "Goal not found")
		}
		return err
	}
	return nil
}

// DeleteAll removes every goal the owner holds. A zero owner id is a
// no-op.
func (s *Service) DeleteAll(ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return nil
	}
	return s.store.DeleteAllByOwner(ownerID)
}

// Start moves a NOT_STARTED goal to ACTIVE and stamps its start date.
func (s *Service) Start(id uuid.UUID) (*models.Goal, error) {
	goal, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if goal.Status != models.StatusNotStarted {
		return nil, newError(CodeInvalidTransition, "Goal already started or completed")
	}
	today := s.today()
	goal.StartDate = &today
	goal.Status = models.StatusActive
	return s.save(goal)
}

// Pause moves an ACTIVE goal to PAUSED.
func (s *Service) Pause(id uuid.UUID) (*models.Goal, error) {
	goal, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if goal.Status != models.StatusActive {
		return nil, newError(CodeInvalidTransition, "Goal is not active and cannot be paused")
	}
	goal.Status = models.StatusPaused
	return s.save(goal)
}

// Resume moves a PAUSED goal back to ACTIVE.
func (s *Service) Resume(id uuid.UUID) (*models.Goal, error) {
	goal, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if goal.Status != models.StatusPaused {
		return nil, newError(CodeInvalidTransition, "Goal is not paused and cannot be resumed")
	}
	goal.Status = models.StatusActive
	return s.save(goal)
}

// Complete marks a goal COMPLETED. The state is terminal.
func (s *Service) Complete(id uuid.UUID) (*models.Goal, error) {
	goal, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if goal.Status == models.StatusCompleted {
		return nil, newError(CodeInvalidTransition, "Goal is already completed")
	}
	goal.Status = models.StatusCompleted
	return s.save(goal)
}

// AddProgress records the effort for one calendar day. The day's entry
// is replaced, not accumulated, so re-posting the same value is a no-op.
// Validation happens before any field is touched.
func (s *Service) AddProgress(id uuid.UUID, date string, effort float64) (*models.Goal, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, newError(CodeValidation, "Invalid date %q, expected YYYY-MM-DD", date)
	}
	if effort < 0 {
		return nil, newError(CodeValidation, "Effort must not be negative")
	}

	goal, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if goal.Status == models.StatusNotStarted {
		return nil, newError(CodeNotStarted,
			"Cannot add progress to a goal that has not been started. Please start the goal first.")
	}
	if goal.Status == models.StatusPaused {
		return nil, newError(CodeGoalPaused, "Goal is paused")
	}

	today := s.today()
	if day.Before(today) {
		return nil, newError(CodePastDateRejected,
			"Effort cannot be added for previous days. Today: %s", today.Format(dateLayout))
	}

	key := day.Format(dateLayout)
	totalExcluding := goal.ProgressCalendar.TotalExcluding(key)
	remaining := goal.EstimatedEffort - totalExcluding
	if effort > remaining {
		return nil, newError(CodeEffortExceedsRemaining,
			"Effort for today exceeds remaining effort. Remaining: %g", remaining)
	}

	if goal.ProgressCalendar == nil {
		goal.ProgressCalendar = models.ProgressCalendar{}
	}
	goal.ProgressCalendar[key] = effort
	goal.InvestedEffort = totalExcluding + effort
	goal.RemainingEffort = goal.EstimatedEffort - goal.InvestedEffort
	return s.save(goal)
}

// Update applies a patch to the goal's editable fields. A goal that does
// not belong to the caller reads the same as a missing one. Owner,
// display order, effort bookkeeping, status and start date are only
// mutated by their dedicated operations.
func (s *Service) Update(id uuid.UUID, patch models.UpdateGoalRequest, ownerID uuid.UUID) (*models.Goal, error) {
	goal, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if goal.OwnerID == nil || *goal.OwnerID != ownerID {
		return nil, newError(CodeNotFound, "Goal not found or doesn't belong to user: %s", id)
	}

	if patch.Name != nil {
		goal.Name = *patch.Name
	}
	if patch.ProgressType != nil {
		pt, ok := models.NormalizeProgressType(*patch.ProgressType)
		if !ok {
			return nil, newError(CodeValidation,
				"Invalid progressType: %q (expected %s or %s)",
				*patch.ProgressType, models.ProgressDuration, models.ProgressCount)
		}
		goal.ProgressType = pt
	}
	if patch.EstimatedEffort != nil && *patch.EstimatedEffort > 0 {
		goal.EstimatedEffort = *patch.EstimatedEffort
		// Re-derive the remaining budget from what is already invested
		goal.RemainingEffort = goal.EstimatedEffort - goal.InvestedEffort
	}

	log.Printf("Updating goal %s for owner %s", id, ownerID)
	return s.save(goal)
}

// Reorder reassigns display orders from the submitted id sequence.
// Membership is validated before anything is written, and only goals
// whose position actually changed are persisted. Owned goals omitted
// from the list keep their old order.
func (s *Service) Reorder(ownerID uuid.UUID, goalIDs []uuid.UUID) ([]models.Goal, error) {
	if len(goalIDs) == 0 {
		return nil, newError(CodeValidation, "goalIds must not be empty")
	}

	owned, err := s.store.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	ownedSet := make(map[uuid.UUID]bool, len(owned))
	byID := make(map[uuid.UUID]*models.Goal, len(owned))
	for i := range owned {
		ownedSet[owned[i].ID] = true
		byID[owned[i].ID] = &owned[i]
	}

	for _, id := range goalIDs {
		if !ownedSet[id] {
			return nil, newError(CodeNotFound, "Goal not found or doesn't belong to user: %s", id)
		}
	}

	var changed []models.Goal
	for i, id := range goalIDs {
		goal := byID[id]
		if goal.DisplayOrder != i {
			goal.DisplayOrder = i
			changed = append(changed, *goal)
		}
	}

	if len(changed) > 0 {
		if _, err := s.store.SaveBatch(changed); err != nil {
			return nil, err
		}
		log.Printf("Updated display order for %d goals", len(changed))
	}

	return s.store.ListByOwner(ownerID)
}

// Export returns the owner's goals in display order, ready to be
// serialized verbatim.
func (s *Service) Export(ownerID uuid.UUID) ([]models.Goal, error) {
	return s.store.ListByOwner(ownerID)
}

// Import upserts a batch of goals for the owner. Every record is
// validated before anything is written; mode "reset" replaces the
// owner's goals wholesale, anything else appends.
func (s *Service) Import(ownerID uuid.UUID, mode string, incoming []models.Goal) ([]models.Goal, error) {
	for i := range incoming {
		goal := &incoming[i]

		pt, ok := models.NormalizeProgressType(string(goal.ProgressType))
		if !ok {
			return nil, newError(CodeValidation,
				"Invalid progressType: %q (expected %s or %s)",
				goal.ProgressType, models.ProgressDuration, models.ProgressCount)
		}
		goal.ProgressType = pt

		if goal.Status == "" {
			goal.Status = models.StatusNotStarted
		}
		if !goal.Status.Valid() {
			return nil, newError(CodeValidation, "Invalid status: %q", goal.Status)
		}

		owner := ownerID
		goal.OwnerID = &owner
		if goal.ProgressCalendar == nil {
			goal.ProgressCalendar = models.ProgressCalendar{}
		}
		// Re-derive the effort totals so imported records satisfy the
		// same bookkeeping as native ones
		goal.InvestedEffort = goal.ProgressCalendar.Total()
		goal.RemainingEffort = goal.EstimatedEffort - goal.InvestedEffort
	}

	if strings.EqualFold(mode, ImportModeReset) {
		if err := s.store.DeleteAllByOwner(ownerID); err != nil {
			return nil, err
		}
	}

	return s.store.SaveBatch(incoming)
}

// today truncates the clock to date precision in UTC.
func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Service) save(goal *models.Goal) (*models.Goal, error) {
	saved, err := s.store.SaveBatch([]models.Goal{*goal})
	if err != nil {
		return nil, err
	}
	return &saved[0], nil
}
