package server

import (
	"campbook/internal/config"
	"campbook/internal/handler"
	"campbook/internal/identity"
	"campbook/internal/repository"
	"campbook/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories bundles the per-entity repositories
type Repositories struct {
	Users       repository.IUserRepository
	Campgrounds repository.ICampgroundRepository
	Bookings    repository.IBookingRepository
}

// Services bundles the application services
type Services struct {
	Auth       *service.AuthService
	Campground *service.CampgroundService
	Booking    *service.BookingService
}

// Handlers bundles the HTTP handlers
type Handlers struct {
	Auth       *handler.AuthHandler
	Campground *handler.CampgroundHandler
	Booking    *handler.BookingHandler
}

// InitRepositories constructs all repositories over the database
func InitRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:       repository.NewUserRepository(db),
		Campgrounds: repository.NewCampgroundRepository(db),
		Bookings:    repository.NewBookingRepository(db),
	}
}

// InitServices constructs all services, including the single identity
// provider adapter shared by auth and middleware.
func InitServices(cfg *config.Config, repos *Repositories) *Services {
	provider := identity.NewFirebase(cfg.Firebase.APIKey, cfg.Firebase.ProjectID)
	return &Services{
		Auth:       service.NewAuthService(repos.Users, provider),
		Campground: service.NewCampgroundService(repos.Campgrounds),
		Booking:    service.NewBookingService(repos.Bookings, repos.Campgrounds),
	}
}

// InitHandlers constructs all handlers
func InitHandlers(services *Services) *Handlers {
	return &Handlers{
		Auth:       handler.NewAuthHandler(services.Auth),
		Campground: handler.NewCampgroundHandler(services.Campground),
		Booking:    handler.NewBookingHandler(services.Booking),
	}
}
