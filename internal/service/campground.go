package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"campbook/internal/model"
	"campbook/internal/repository"
	"campbook/pkg/util"
)

// CampgroundService handles campground business logic
type CampgroundService struct {
	repo repository.ICampgroundRepository
}

// NewCampgroundService creates a new campground service
func NewCampgroundService(repo repository.ICampgroundRepository) *CampgroundService {
	return &CampgroundService{repo: repo}
}

// List returns all campgrounds
func (s *CampgroundService) List(ctx context.Context) ([]*model.Campground, error) {
	return s.repo.Find(ctx)
}

// Get returns a campground by ID
func (s *CampgroundService) Get(ctx context.Context, id string) (*model.Campground, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, InvalidInput("Invalid campground ID format")
	}

	campground, err := s.repo.FindByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("find campground: %w", err)
	}
	if campground == nil {
		return nil, NotFound("No campground with the id of %s", id)
	}
	return campground, nil
}

// Create validates and persists a new campground
func (s *CampgroundService) Create(ctx context.Context, req model.CreateCampgroundRequest) (*model.Campground, error) {
	campground := &model.Campground{
		Name:      strings.TrimSpace(req.Name),
		Address:   strings.TrimSpace(req.Address),
		Telephone: strings.TrimSpace(req.Telephone),
	}
	if err := validateCampground(campground); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, campground)
	if err != nil {
		if err == repository.ErrDuplicate {
			return nil, Conflict("A campground named %q already exists", campground.Name)
		}
		return nil, fmt.Errorf("create campground: %w", err)
	}
	return created, nil
}

// Update applies a partial update and re-runs validation
func (s *CampgroundService) Update(ctx context.Context, id string, req model.UpdateCampgroundRequest) (*model.Campground, error) {
	campground, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		campground.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		campground.Address = strings.TrimSpace(*req.Address)
	}
	if req.Telephone != nil {
		campground.Telephone = strings.TrimSpace(*req.Telephone)
	}
	if err := validateCampground(campground); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, campground); err != nil {
		if err == repository.ErrDuplicate {
			return nil, Conflict("A campground named %q already exists", campground.Name)
		}
		return nil, fmt.Errorf("update campground: %w", err)
	}
	return campground, nil
}

// Delete removes a campground. Existing bookings keep their reference and
// are not cascaded.
func (s *CampgroundService) Delete(ctx context.Context, id string) error {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return InvalidInput("Invalid campground ID format")
	}

	deleted, err := s.repo.Delete(ctx, objID)
	if err != nil {
		return fmt.Errorf("delete campground: %w", err)
	}
	if !deleted {
		return NotFound("No campground with the id of %s", id)
	}
	return nil
}

func validateCampground(c *model.Campground) error {
	if c.Name == "" {
		return InvalidInput("Please add a name")
	}
	// Rune count, matching the binding-layer max=50 on create requests.
	if utf8.RuneCountInString(c.Name) > model.MaxCampgroundNameLength {
		return InvalidInput("Name cannot be more than %d characters", model.MaxCampgroundNameLength)
	}
	if c.Address == "" {
		return InvalidInput("Please add an address")
	}
	return nil
}
