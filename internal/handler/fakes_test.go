package handler

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/muhammadafan/fresh-harvest-connect/internal/config"
	"github.com/muhammadafan/fresh-harvest-connect/internal/middleware"
	"github.com/muhammadafan/fresh-harvest-connect/internal/model"
	"github.com/muhammadafan/fresh-harvest-connect/internal/queue"
	"github.com/muhammadafan/fresh-harvest-connect/internal/repository"
	"github.com/muhammadafan/fresh-harvest-connect/internal/utils"
)

const testSecret = "handler-test-secret"

func testConfig() config.Config {
	return config.Config{
		Env:           "test",
		JWTSecret:     testSecret,
		SessionTTLMin: 30,
		BcryptCost:    bcrypt.MinCost,
	}
}

// ----- in-memory stores -----

type fakeUsers struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[uint64]model.User{}}
}

func (f *fakeUsers) Create(_ context.Context, name, email, password, role string, cost int) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	f.nextID++
	f.users[f.nextID] = model.User{
		ID: f.nextID, Name: name, Email: email, PasswordHash: hash, Role: role,
	}
	return f.nextID, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

type fakeProducts struct {
	mu       sync.Mutex
	nextID   uint64
	products map[uint64]model.Product
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{products: map[uint64]model.Product{}}
}

func (f *fakeProducts) Create(_ context.Context, p *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id uint64) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (f *fakeProducts) ListByFarmer(_ context.Context, farmerID uint64) ([]*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Product
	for _, p := range f.products {
		if p.FarmerID == farmerID {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProducts) ListAvailable(_ context.Context, flt repository.BrowseFilter) ([]*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Product
	for _, p := range f.products {
		if !p.IsAvailable {
			continue
		}
		if flt.Category != "" && p.Category != flt.Category {
			continue
		}
		if flt.Organic && !p.IsOrganic {
			continue
		}
		if flt.Featured && !p.IsFeatured {
			continue
		}
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProducts) Update(_ context.Context, p *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.ID]; !ok {
		return repository.ErrNotFound
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

type fakeProfiles struct {
	mu       sync.Mutex
	nextID   uint64
	profiles map[uint64]model.FarmerProfile // keyed by user id
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: map[uint64]model.FarmerProfile{}}
}

func (f *fakeProfiles) Upsert(_ context.Context, p *model.FarmerProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.profiles[p.UserID]; ok {
		p.ID = existing.ID
	} else {
		f.nextID++
		p.ID = f.nextID
	}
	f.profiles[p.UserID] = *p
	return nil
}

func (f *fakeProfiles) GetByUser(_ context.Context, userID uint64) (*model.FarmerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := p
	return &cp, nil
}

type fakeCategories struct {
	mu         sync.Mutex
	nextID     uint64
	categories []*model.Category
}

func (f *fakeCategories) Create(_ context.Context, c *model.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.categories {
		if existing.Slug == c.Slug {
			return repository.ErrSlugExists
		}
	}
	f.nextID++
	c.ID = f.nextID
	cp := *c
	f.categories = append(f.categories, &cp)
	return nil
}

func (f *fakeCategories) List(_ context.Context) ([]*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*model.Category(nil), f.categories...), nil
}

// fakeEvents records published events so tests can assert on them.
type fakeEvents struct {
	mu     sync.Mutex
	events []queue.ActivityEvent
}

func (f *fakeEvents) Publish(_ context.Context, ev queue.ActivityEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

// ----- request helpers -----

type env struct {
	seq        uint64
	users      *fakeUsers
	products   *fakeProducts
	profiles   *fakeProfiles
	categories *fakeCategories
	events     *fakeEvents
	e          *echo.Echo
}

// newEnv wires handlers against the fakes with the same middleware
// layout the router uses.
func newEnv(t *testing.T) *env {
	t.Helper()
	v := &env{
		users:      newFakeUsers(),
		products:   newFakeProducts(),
		profiles:   newFakeProfiles(),
		categories: &fakeCategories{},
		events:     &fakeEvents{},
		e:          echo.New(),
	}
	cfg := testConfig()
	auth := NewAuthHandler(cfg, v.users, v.events)
	products := NewProductHandler(v.users, v.products, v.events)
	profiles := NewProfileHandler(v.users, v.profiles)
	categories := NewCategoryHandler(v.users, v.categories)

	session := middleware.Session(cfg.JWTSecret)

	v.e.POST("/auth/signup", auth.Signup)
	v.e.POST("/auth/login", auth.Login)
	v.e.POST("/auth/logout", auth.Logout)
	v.e.GET("/v1/me", auth.Me, session)
	v.e.GET("/categories", categories.List)
	v.e.POST("/categories", categories.Create, session, middleware.RequireRole(model.RoleAdmin))
	v.e.GET("/v1/products", products.Browse)

	farmer := v.e.Group("/farmer", session)
	farmerOnly := middleware.RequireRole(model.RoleFarmer)
	farmer.GET("/products", products.ListMine, farmerOnly)
	farmer.POST("/products", products.Create, farmerOnly)
	farmer.GET("/products/:id", products.Get, middleware.RequireRole(model.RoleFarmer, model.RoleAdmin))
	farmer.PUT("/products/:id", products.Update, farmerOnly)
	farmer.DELETE("/products/:id", products.Delete, farmerOnly)
	farmer.GET("/profile", profiles.Get)
	farmer.POST("/profile", profiles.Save, farmerOnly)
	return v
}

// addUser seeds a user directly in the store and returns its id with a
// valid session token.
func (v *env) addUser(t *testing.T, role string) (uint64, string) {
	t.Helper()
	v.seq++
	id, err := v.users.Create(context.Background(),
		"Test "+role, fmt.Sprintf("%s%d@farm.test", strings.ToLower(role), v.seq), "password123", role, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("seeding %s user: %v", role, err)
	}
	tok, err := utils.NewSessionToken(testSecret, id, role, 30)
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}
	return id, tok.Token
}

func (v *env) do(method, path, token, body string) *httptest.ResponseRecorder {
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	v.e.ServeHTTP(rec, req)
	return rec
}
