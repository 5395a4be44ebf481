package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"campbook/internal/identity"
	"campbook/internal/model"
	"campbook/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- in-memory repositories ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*model.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.FirebaseUID == user.FirebaseUID {
			return nil, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByFirebaseUID(ctx context.Context, uid string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.FirebaseUID == uid {
			return u, nil
		}
	}
	return nil, nil
}

type fakeCampgroundRepo struct {
	mu          sync.Mutex
	campgrounds map[primitive.ObjectID]*model.Campground
}

func newFakeCampgroundRepo() *fakeCampgroundRepo {
	return &fakeCampgroundRepo{campgrounds: map[primitive.ObjectID]*model.Campground{}}
}

func (r *fakeCampgroundRepo) Find(ctx context.Context) ([]*model.Campground, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Campground, 0, len(r.campgrounds))
	for _, c := range r.campgrounds {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCampgroundRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Campground, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.campgrounds[id], nil
}

func (r *fakeCampgroundRepo) Create(ctx context.Context, campground *model.Campground) (*model.Campground, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.campgrounds {
		if c.Name == campground.Name {
			return nil, repository.ErrDuplicate
		}
	}
	campground.ID = primitive.NewObjectID()
	r.campgrounds[campground.ID] = campground
	return campground, nil
}

func (r *fakeCampgroundRepo) Update(ctx context.Context, campground *model.Campground) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.campgrounds {
		if id != campground.ID && c.Name == campground.Name {
			return repository.ErrDuplicate
		}
	}
	r.campgrounds[campground.ID] = campground
	return nil
}

func (r *fakeCampgroundRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campgrounds[id]; !ok {
		return false, nil
	}
	delete(r.campgrounds, id)
	return true, nil
}

type fakeBookingRepo struct {
	mu          sync.Mutex
	bookings    map[primitive.ObjectID]*model.Booking
	campgrounds *fakeCampgroundRepo
}

func newFakeBookingRepo(campgrounds *fakeCampgroundRepo) *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:    map[primitive.ObjectID]*model.Booking{},
		campgrounds: campgrounds,
	}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	r.bookings[booking.ID] = booking
	return booking, nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id], nil
}

func (r *fakeBookingRepo) FindDetailed(ctx context.Context, filter repository.BookingFilter) ([]*model.BookingDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.BookingDetail, 0)
	for _, b := range r.bookings {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.CampgroundID != nil && b.CampgroundID != *filter.CampgroundID {
			continue
		}
		// the $lookup join drops bookings whose campground is gone
		campground := r.campgrounds.campgrounds[b.CampgroundID]
		if campground == nil {
			continue
		}
		out = append(out, b.Detail(campground))
	}
	return out, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return false, nil
	}
	delete(r.bookings, id)
	return true, nil
}

func (r *fakeBookingRepo) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) CountAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.bookings)), nil
}

func (r *fakeBookingRepo) GroupByCampground(ctx context.Context) ([]model.CampgroundBookingCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[primitive.ObjectID]int64{}
	for _, b := range r.bookings {
		counts[b.CampgroundID]++
	}
	// deliberately unordered, like the store's $group output
	out := make([]model.CampgroundBookingCount, 0, len(counts))
	for id, n := range counts {
		campground := r.campgrounds.campgrounds[id]
		if campground == nil {
			continue
		}
		out = append(out, model.CampgroundBookingCount{
			CampgroundID:   id.Hex(),
			CampgroundName: campground.Name,
			BookingCount:   n,
		})
	}
	return out, nil
}

// --- stub identity provider ---

type fakeProvider struct {
	createAccountFn func(ctx context.Context, params identity.CreateAccountParams) (*identity.Account, error)
	verifyTokenFn   func(ctx context.Context, idToken string) (*identity.Account, error)
	signInFn        func(ctx context.Context, email, password string) (*identity.Session, error)
	sendResetFn     func(ctx context.Context, email string) error
}

func (p *fakeProvider) CreateAccount(ctx context.Context, params identity.CreateAccountParams) (*identity.Account, error) {
	if p.createAccountFn != nil {
		return p.createAccountFn(ctx, params)
	}
	return &identity.Account{
		UID:         "uid-" + params.Email,
		Email:       params.Email,
		Name:        params.Name,
		PhoneNumber: params.PhoneNumber,
	}, nil
}

func (p *fakeProvider) VerifyToken(ctx context.Context, idToken string) (*identity.Account, error) {
	if p.verifyTokenFn != nil {
		return p.verifyTokenFn(ctx, idToken)
	}
	return nil, &identity.Error{Code: identity.CodeInvalidIDToken, Message: "invalid token"}
}

func (p *fakeProvider) SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error) {
	if p.signInFn != nil {
		return p.signInFn(ctx, email, password)
	}
	return &identity.Session{UID: "uid-" + email, IDToken: "token-" + email}, nil
}

func (p *fakeProvider) SendPasswordReset(ctx context.Context, email string) error {
	if p.sendResetFn != nil {
		return p.sendResetFn(ctx, email)
	}
	return nil
}

// --- helpers ---

func newTestUser(role string) *model.User {
	return &model.User{
		ID:          primitive.NewObjectID(),
		FirebaseUID: "uid-" + primitive.NewObjectID().Hex(),
		Name:        "Test User",
		PhoneNumber: "+1234567890",
		Email:       primitive.NewObjectID().Hex() + "@example.com",
		Role:        role,
	}
}

func mustCreateCampground(t *testing.T, repo *fakeCampgroundRepo, name string) *model.Campground {
	t.Helper()
	campground, err := repo.Create(context.Background(), &model.Campground{
		Name:    name,
		Address: "1 Forest Road",
	})
	if err != nil {
		t.Fatalf("create campground %q: %v", name, err)
	}
	return campground
}
