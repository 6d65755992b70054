package handler // handler defines http handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/muhammadafan/fresh-harvest-connect/internal/model"
	"github.com/muhammadafan/fresh-harvest-connect/internal/queue"
	"github.com/muhammadafan/fresh-harvest-connect/internal/repository"
)

// Handlers depend on narrow store interfaces rather than concrete
// repositories so tests can exercise the full HTTP surface against
// in-memory fakes. The repository package provides the MySQL
// implementations.

// UserStore is the credential store consumed by auth and by the
// authorization re-checks at the data-access boundary.
type UserStore interface {
	Create(ctx context.Context, name, email, password, role string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// ProductStore persists product listings.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, id uint64) (*model.Product, error)
	ListByFarmer(ctx context.Context, farmerID uint64) ([]*model.Product, error)
	ListAvailable(ctx context.Context, f repository.BrowseFilter) ([]*model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uint64) error
}

// ProfileStore persists farmer profiles with upsert semantics.
type ProfileStore interface {
	Upsert(ctx context.Context, p *model.FarmerProfile) error
	GetByUser(ctx context.Context, userID uint64) (*model.FarmerProfile, error)
}

// CategoryStore persists categories.
type CategoryStore interface {
	Create(ctx context.Context, c *model.Category) error
	List(ctx context.Context) ([]*model.Category, error)
}

// EventSink receives activity events. May be nil, in which case events
// are dropped.
type EventSink interface {
	Publish(ctx context.Context, ev queue.ActivityEvent) error
}

// dbTimeout bounds every store call made from a handler.
const dbTimeout = 5 * time.Second

// getUserID extracts the authenticated user id stored by the session
// middleware.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get("user_id").(uint64); ok && id != 0 {
		return id, nil
	}
	return 0, errors.New("invalid user_id in context")
}

// requireStoredUser re-resolves the caller's user record by the session
// subject. The route-level check is necessary but not sufficient:
// authorization is re-verified here, at the data-access boundary, so a
// stale or tampered role claim never authorizes a mutation.
func requireStoredUser(ctx context.Context, c echo.Context, users UserStore) (model.User, bool) {
	id, err := getUserID(c)
	if err != nil {
		return model.User{}, false
	}
	u, err := users.GetByID(ctx, id)
	if err != nil {
		return model.User{}, false
	}
	return u, true
}

// bindJSON decodes a JSON body into dst, rejecting unknown fields so
// malformed or misspelled payloads fail fast instead of silently
// dropping data.
func bindJSON(c echo.Context, dst any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// fireEvent publishes an activity event off the request path. The
// request context is not reused: the response must not wait on the
// broker, and the publish should survive the request ending.
func fireEvent(sink EventSink, ev queue.ActivityEvent) {
	if sink == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = sink.Publish(ctx, ev)
	}()
}

func internalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
}
