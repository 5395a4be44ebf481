package service

import (
	"context"
	"fmt"
	"sort"

	"campbook/internal/model"
	"campbook/internal/repository"
	"campbook/pkg/util"
)

// BookingService handles booking business logic: ownership checks, the
// per-user quota and the admin dashboard aggregation.
type BookingService struct {
	bookings    repository.IBookingRepository
	campgrounds repository.ICampgroundRepository
}

// NewBookingService creates a new booking service
func NewBookingService(bookings repository.IBookingRepository, campgrounds repository.ICampgroundRepository) *BookingService {
	return &BookingService{bookings: bookings, campgrounds: campgrounds}
}

// List returns campground-joined bookings. Non-admin callers see only their
// own; admins see all, optionally narrowed to one campground.
func (s *BookingService) List(ctx context.Context, requester *model.User, campgroundID string) ([]*model.BookingDetail, error) {
	filter := repository.BookingFilter{}
	if !requester.IsAdmin() {
		filter.UserID = &requester.ID
	} else if campgroundID != "" {
		objID, err := util.ParseObjectID(campgroundID)
		if err != nil {
			return nil, InvalidInput("Invalid campground ID format")
		}
		filter.CampgroundID = &objID
	}

	details, err := s.bookings.FindDetailed(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	return details, nil
}

// Get returns one campground-joined booking, for its owner or an admin.
func (s *BookingService) Get(ctx context.Context, requester *model.User, id string) (*model.BookingDetail, error) {
	booking, err := s.findOwned(ctx, requester, id, "view")
	if err != nil {
		return nil, err
	}
	return s.joinCampground(ctx, booking)
}

// Create books a campground for the requester, enforcing the quota for
// non-admin users.
func (s *BookingService) Create(ctx context.Context, requester *model.User, req model.CreateBookingRequest) (*model.BookingDetail, error) {
	campgroundID, err := util.ParseObjectID(req.CampgroundID)
	if err != nil {
		return nil, InvalidInput("Invalid campground ID format")
	}

	campground, err := s.campgrounds.FindByID(ctx, campgroundID)
	if err != nil {
		return nil, fmt.Errorf("find campground: %w", err)
	}
	if campground == nil {
		return nil, NotFound("No campground with the id of %s", req.CampgroundID)
	}

	// Best-effort quota check; concurrent creations by the same user can
	// transiently exceed it by one.
	if !requester.IsAdmin() {
		count, err := s.bookings.CountByUser(ctx, requester.ID)
		if err != nil {
			return nil, fmt.Errorf("count bookings: %w", err)
		}
		if count >= model.MaxActiveBookings {
			return nil, InvalidInput("The user with ID %s has already made %d bookings", requester.ID.Hex(), model.MaxActiveBookings)
		}
	}

	booking, err := s.bookings.Create(ctx, &model.Booking{
		UserID:       requester.ID,
		CampgroundID: campgroundID,
		BookingDate:  req.BookingDate,
	})
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return booking.Detail(campground), nil
}

// Update applies a partial update to a booking, for its owner or an admin.
func (s *BookingService) Update(ctx context.Context, requester *model.User, id string, req model.UpdateBookingRequest) (*model.BookingDetail, error) {
	booking, err := s.findOwned(ctx, requester, id, "update")
	if err != nil {
		return nil, err
	}

	if req.CampgroundID != nil {
		campgroundID, err := util.ParseObjectID(*req.CampgroundID)
		if err != nil {
			return nil, InvalidInput("Invalid campground ID format")
		}
		campground, err := s.campgrounds.FindByID(ctx, campgroundID)
		if err != nil {
			return nil, fmt.Errorf("find campground: %w", err)
		}
		if campground == nil {
			return nil, NotFound("No campground with the id of %s", *req.CampgroundID)
		}
		booking.CampgroundID = campgroundID
	}
	if req.BookingDate != nil {
		booking.BookingDate = *req.BookingDate
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return s.joinCampground(ctx, booking)
}

// Delete removes a booking, for its owner or an admin, and returns its prior
// state.
func (s *BookingService) Delete(ctx context.Context, requester *model.User, id string) (*model.BookingDetail, error) {
	booking, err := s.findOwned(ctx, requester, id, "delete")
	if err != nil {
		return nil, err
	}

	// Join before the delete so the response reflects the prior state even
	// when the campground reference dangles.
	campground, err := s.campgrounds.FindByID(ctx, booking.CampgroundID)
	if err != nil {
		return nil, fmt.Errorf("find campground: %w", err)
	}

	deleted, err := s.bookings.Delete(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("delete booking: %w", err)
	}
	if !deleted {
		return nil, NotFound("No booking with the id of %s", id)
	}
	return booking.Detail(campground), nil
}

// Dashboard aggregates bookings per campground for admins, ranked by count
// descending with ties broken by name.
func (s *BookingService) Dashboard(ctx context.Context, requester *model.User) (*model.DashboardSummary, error) {
	if !requester.IsAdmin() {
		return nil, Forbidden("User %s is not authorized to access the dashboard", requester.ID.Hex())
	}

	total, err := s.bookings.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	groups, err := s.bookings.GroupByCampground(ctx)
	if err != nil {
		return nil, fmt.Errorf("group bookings: %w", err)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].BookingCount != groups[j].BookingCount {
			return groups[i].BookingCount > groups[j].BookingCount
		}
		return groups[i].CampgroundName < groups[j].CampgroundName
	})

	return &model.DashboardSummary{
		TotalBookings:  total,
		BookingSummary: groups,
	}, nil
}

// findOwned loads a booking and enforces the owner-or-admin rule.
func (s *BookingService) findOwned(ctx context.Context, requester *model.User, id, action string) (*model.Booking, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, InvalidInput("Invalid booking ID format")
	}

	booking, err := s.bookings.FindByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, NotFound("No booking with the id of %s", id)
	}

	if !requester.IsAdmin() && booking.UserID != requester.ID {
		return nil, Forbidden("User %s is not authorized to %s this booking", requester.ID.Hex(), action)
	}
	return booking, nil
}

// joinCampground builds the joined response shape for a single booking.
func (s *BookingService) joinCampground(ctx context.Context, booking *model.Booking) (*model.BookingDetail, error) {
	campground, err := s.campgrounds.FindByID(ctx, booking.CampgroundID)
	if err != nil {
		return nil, fmt.Errorf("find campground: %w", err)
	}
	if campground == nil {
		return nil, NotFound("The campground for this booking no longer exists")
	}
	return booking.Detail(campground), nil
}
