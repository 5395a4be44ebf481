package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"campbook/internal/identity"
	"campbook/internal/middleware"
	"campbook/internal/model"
	"campbook/internal/repository"
	"campbook/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- in-memory stores backing the real services under test ---

type memUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[primitive.ObjectID]*model.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) (*model.User, error) {
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

func (r *memUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByFirebaseUID(ctx context.Context, uid string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.FirebaseUID == uid {
			return u, nil
		}
	}
	return nil, nil
}

type memCampgroundRepo struct {
	mu          sync.Mutex
	campgrounds map[primitive.ObjectID]*model.Campground
}

func newMemCampgroundRepo() *memCampgroundRepo {
	return &memCampgroundRepo{campgrounds: map[primitive.ObjectID]*model.Campground{}}
}

func (r *memCampgroundRepo) Find(ctx context.Context) ([]*model.Campground, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Campground, 0, len(r.campgrounds))
	for _, c := range r.campgrounds {
		out = append(out, c)
	}
	return out, nil
}

func (r *memCampgroundRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Campground, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.campgrounds[id], nil
}

func (r *memCampgroundRepo) Create(ctx context.Context, campground *model.Campground) (*model.Campground, error) {
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

func (r *memCampgroundRepo) Update(ctx context.Context, campground *model.Campground) error {
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

func (r *memCampgroundRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campgrounds[id]; !ok {
		return false, nil
	}
	delete(r.campgrounds, id)
	return true, nil
}

type memBookingRepo struct {
	mu          sync.Mutex
	bookings    map[primitive.ObjectID]*model.Booking
	campgrounds *memCampgroundRepo
}

func newMemBookingRepo(campgrounds *memCampgroundRepo) *memBookingRepo {
	return &memBookingRepo{
		bookings:    map[primitive.ObjectID]*model.Booking{},
		campgrounds: campgrounds,
	}
}

func (r *memBookingRepo) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	r.bookings[booking.ID] = booking
	return booking, nil
}

func (r *memBookingRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id], nil
}

func (r *memBookingRepo) FindDetailed(ctx context.Context, filter repository.BookingFilter) ([]*model.BookingDetail, error) {
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
		campground := r.campgrounds.campgrounds[b.CampgroundID]
		if campground == nil {
			continue
		}
		out = append(out, b.Detail(campground))
	}
	return out, nil
}

func (r *memBookingRepo) Update(ctx context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[booking.ID] = booking
	return nil
}

func (r *memBookingRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return false, nil
	}
	delete(r.bookings, id)
	return true, nil
}

func (r *memBookingRepo) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
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

func (r *memBookingRepo) CountAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.bookings)), nil
}

func (r *memBookingRepo) GroupByCampground(ctx context.Context) ([]model.CampgroundBookingCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[primitive.ObjectID]int64{}
	for _, b := range r.bookings {
		counts[b.CampgroundID]++
	}
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

// memProvider is a token-to-account identity provider.
type memProvider struct {
	mu       sync.Mutex
	accounts map[string]identity.Account // keyed by token
}

func newMemProvider() *memProvider {
	return &memProvider{accounts: map[string]identity.Account{}}
}

func (p *memProvider) addAccount(token string, account identity.Account) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accounts[token] = account
}

func (p *memProvider) CreateAccount(ctx context.Context, params identity.CreateAccountParams) (*identity.Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, a := range p.accounts {
		if a.Email == params.Email {
			return nil, &identity.Error{Code: identity.CodeEmailExists, Message: "EMAIL_EXISTS"}
		}
	}
	account := identity.Account{
		UID:         "uid-" + params.Email,
		Email:       params.Email,
		Name:        params.Name,
		PhoneNumber: params.PhoneNumber,
	}
	p.accounts["token-"+params.Email] = account
	return &account, nil
}

func (p *memProvider) VerifyToken(ctx context.Context, idToken string) (*identity.Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	account, ok := p.accounts[idToken]
	if !ok {
		return nil, &identity.Error{Code: identity.CodeInvalidIDToken, Message: "invalid token"}
	}
	return &account, nil
}

func (p *memProvider) SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	token := "token-" + email
	account, ok := p.accounts[token]
	if !ok {
		return nil, &identity.Error{Code: identity.CodeInvalidCredentials, Message: "INVALID_LOGIN_CREDENTIALS"}
	}
	return &identity.Session{UID: account.UID, IDToken: token}, nil
}

func (p *memProvider) SendPasswordReset(ctx context.Context, email string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, a := range p.accounts {
		if a.Email == email {
			return nil
		}
	}
	return &identity.Error{Code: identity.CodeEmailNotFound, Message: "EMAIL_NOT_FOUND"}
}

// --- test API wiring ---

type testAPI struct {
	router      *gin.Engine
	users       *memUserRepo
	campgrounds *memCampgroundRepo
	bookings    *memBookingRepo
	provider    *memProvider
}

// newTestAPI wires the real handlers, services and auth middleware over
// in-memory stores, mirroring the production route layout.
func newTestAPI() *testAPI {
	users := newMemUserRepo()
	campgrounds := newMemCampgroundRepo()
	bookings := newMemBookingRepo(campgrounds)
	provider := newMemProvider()

	authService := service.NewAuthService(users, provider)
	campgroundService := service.NewCampgroundService(campgrounds)
	bookingService := service.NewBookingService(bookings, campgrounds)

	authHandler := NewAuthHandler(authService)
	campgroundHandler := NewCampgroundHandler(campgroundService)
	bookingHandler := NewBookingHandler(bookingService)

	authenticate := middleware.Authenticate(authService)

	router := gin.New()
	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.GET("/me", authenticate, authHandler.Me)
	auth.GET("/logout", authenticate, authHandler.Logout)
	auth.GET("/:id", authenticate, authHandler.GetUser)

	campgroundRoutes := api.Group("/campgrounds")
	campgroundRoutes.GET("", campgroundHandler.List)
	campgroundRoutes.GET("/:id", campgroundHandler.Get)
	campgroundRoutes.POST("", authenticate, middleware.Authorize(model.RoleAdmin), campgroundHandler.Create)
	campgroundRoutes.PUT("/:id", authenticate, middleware.Authorize(model.RoleAdmin), campgroundHandler.Update)
	campgroundRoutes.DELETE("/:id", authenticate, middleware.Authorize(model.RoleAdmin), campgroundHandler.Delete)

	bookingRoutes := api.Group("/bookings", authenticate)
	bookingRoutes.GET("", bookingHandler.List)
	bookingRoutes.GET("/dashboard", middleware.Authorize(model.RoleAdmin), bookingHandler.Dashboard)
	bookingRoutes.GET("/:id", bookingHandler.Get)
	bookingRoutes.POST("", middleware.Authorize(model.RoleAdmin, model.RoleUser), bookingHandler.Create)
	bookingRoutes.PUT("/:id", middleware.Authorize(model.RoleAdmin, model.RoleUser), bookingHandler.Update)
	bookingRoutes.DELETE("/:id", middleware.Authorize(model.RoleAdmin, model.RoleUser), bookingHandler.Delete)

	return &testAPI{
		router:      router,
		users:       users,
		campgrounds: campgrounds,
		bookings:    bookings,
		provider:    provider,
	}
}

// seedUser creates a provider account plus local user and returns the user
// and its bearer token.
func (a *testAPI) seedUser(t *testing.T, role, email string) (*model.User, string) {
	t.Helper()
	token := "token-" + email
	a.provider.addAccount(token, identity.Account{
		UID:   "uid-" + email,
		Email: email,
		Name:  "Seeded User",
	})
	user, err := a.users.Create(context.Background(), &model.User{
		FirebaseUID: "uid-" + email,
		Name:        "Seeded User",
		PhoneNumber: "+1234567890",
		Email:       email,
		Role:        role,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user, token
}

func (a *testAPI) seedCampground(t *testing.T, name string) *model.Campground {
	t.Helper()
	campground, err := a.campgrounds.Create(context.Background(), &model.Campground{
		Name:    name,
		Address: "1 Forest Road",
	})
	if err != nil {
		t.Fatalf("seed campground %q: %v", name, err)
	}
	return campground
}

// do issues a request with an optional JSON body and bearer token.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors model.Response with data left raw for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope %q: %v", rec.Body.String(), err)
	}
	return env
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data %q: %v", string(env.Data), err)
	}
}
