package services

import (
	"time"

	"github.com/chenmq77/duckiki/app/models"
)

// ActivityService records sessions. The weight is computed once here, at
// creation time, and stored with the row.
type ActivityService struct {
	store Store
}

func NewActivityService(store Store) *ActivityService {
	return &ActivityService{store: store}
}

// ActivityInput carries the fields needed to record a session.
type ActivityInput struct {
	Type     models.ActivityType
	Date     time.Time
	Distance int
	Note     string
}

// Create validates the input, computes the distance weight and persists
// the activity.
func (s *ActivityService) Create(in ActivityInput) (*models.Activity, error) {
	if in.Type == "" {
		return nil, Validationf("type is required")
	}
	if in.Type != models.ActivitySwimming {
		return nil, Validationf("unsupported activity type: %s", in.Type)
	}
	if in.Date.IsZero() {
		return nil, Validationf("date is required")
	}

	weight, err := ActivityWeight(in.Distance)
	if err != nil {
		return nil, err
	}

	a := &models.Activity{
		Type:             in.Type,
		Date:             in.Date,
		Distance:         in.Distance,
		CalculatedWeight: weight,
		Note:             in.Note,
	}
	if err := s.store.CreateActivity(a); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns all activities.
func (s *ActivityService) List() ([]*models.Activity, error) {
	return s.store.ListActivities()
}

// Delete removes an activity.
func (s *ActivityService) Delete(id string) error {
	return s.store.DeleteActivity(id)
}
