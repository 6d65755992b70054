package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/muhammadafan/fresh-harvest-connect/internal/model"
	"github.com/muhammadafan/fresh-harvest-connect/internal/queue"
	"github.com/muhammadafan/fresh-harvest-connect/internal/repository"
)

// ProductHandler serves the farmer-facing product CRUD and the public
// marketplace listing.
type ProductHandler struct {
	Users    UserStore
	Products ProductStore
	Events   EventSink
}

func NewProductHandler(users UserStore, products ProductStore, events EventSink) *ProductHandler {
	return &ProductHandler{Users: users, Products: products, Events: events}
}

// productReq is the typed request body for create and update. All
// fields are explicit; unknown fields are rejected at bind time.
type productReq struct {
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Category          string     `json:"category"`
	Images            []string   `json:"images"`
	Price             float64    `json:"price"`
	Unit              string     `json:"unit"`
	QuantityAvailable float64    `json:"quantityAvailable"`
	IsOrganic         bool       `json:"isOrganic"`
	IsFeatured        bool       `json:"isFeatured"`
	IsAvailable       *bool      `json:"isAvailable"`
	HarvestDate       *time.Time `json:"harvestDate"`
	ExpiryDate        *time.Time `json:"expiryDate"`
}

// apply copies the payload onto p. The owning farmer is never taken
// from the payload.
func (r *productReq) apply(p *model.Product) {
	p.Name = r.Name
	p.Description = r.Description
	p.Category = r.Category
	p.Images = r.Images
	p.Price = r.Price
	p.Unit = r.Unit
	p.QuantityAvailable = r.QuantityAvailable
	p.IsOrganic = r.IsOrganic
	p.IsFeatured = r.IsFeatured
	p.IsAvailable = r.IsAvailable == nil || *r.IsAvailable
	p.HarvestDate = r.HarvestDate
	p.ExpiryDate = r.ExpiryDate
}

// requireFarmer re-reads the caller's user record and checks the stored
// role, not the token claim. Returns false after writing the 401
// response when the caller is missing or not a farmer.
func (h *ProductHandler) requireFarmer(ctx context.Context, c echo.Context) (model.User, bool) {
	u, ok := requireStoredUser(ctx, c, h.Users)
	if !ok || u.Role != model.RoleFarmer {
		return model.User{}, false
	}
	return u, true
}

// ListMine handles GET /farmer/products: the caller's own products,
// newest first.
func (h *ProductHandler) ListMine(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, ok := h.requireFarmer(ctx, c)
	if !ok {
		return unauthorized(c)
	}
	products, err := h.Products.ListByFarmer(ctx, u.ID)
	if err != nil {
		return internalError(c)
	}
	if products == nil {
		products = []*model.Product{}
	}
	return c.JSON(http.StatusOK, echo.Map{"products": products})
}

// Create handles POST /farmer/products. The owning farmer is always the
// session subject; a farmer id in the payload would be rejected as an
// unknown field.
func (h *ProductHandler) Create(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, ok := h.requireFarmer(ctx, c)
	if !ok {
		return unauthorized(c)
	}
	var req productReq
	if err := bindJSON(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p := &model.Product{FarmerID: u.ID}
	req.apply(p)
	if err := p.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Products.Create(ctx, p); err != nil {
		return internalError(c)
	}

	fireEvent(h.Events, queue.ActivityEvent{
		Event: queue.EventProductCreated, UserID: u.ID, ProductID: p.ID,
		Name: p.Name, Category: p.Category, Price: p.Price, Unit: p.Unit,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "product created successfully",
		"product": p,
	})
}

// Get handles GET /farmer/products/:id. Visibility is owner-or-ADMIN:
// the public marketplace has its own listing, this endpoint backs the
// farmer's edit screen.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, ok := requireStoredUser(ctx, c, h.Users)
	if !ok {
		return unauthorized(c)
	}
	p, err := h.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return internalError(c)
	}
	if u.Role != model.RoleAdmin && p.FarmerID != u.ID {
		return unauthorized(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"product": p})
}

// Update handles PUT /farmer/products/:id. The resource is loaded
// first: absence is 404, owner mismatch is 401, and only then is the
// payload applied.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, ok := h.requireFarmer(ctx, c)
	if !ok {
		return unauthorized(c)
	}
	var req productReq
	if err := bindJSON(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p, err := h.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return internalError(c)
	}
	if p.FarmerID != u.ID {
		return unauthorized(c)
	}
	req.apply(p)
	if err := p.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Products.Update(ctx, p); err != nil {
		return internalError(c)
	}

	fireEvent(h.Events, queue.ActivityEvent{
		Event: queue.EventProductUpdated, UserID: u.ID, ProductID: p.ID,
		Name: p.Name, Category: p.Category, Price: p.Price, Unit: p.Unit,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, echo.Map{
		"message": "product updated successfully",
		"product": p,
	})
}

// Delete handles DELETE /farmer/products/:id. Only the owner may
// delete; ADMIN has no delete bypass.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, ok := h.requireFarmer(ctx, c)
	if !ok {
		return unauthorized(c)
	}
	p, err := h.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return internalError(c)
	}
	if p.FarmerID != u.ID {
		return unauthorized(c)
	}
	if err := h.Products.Delete(ctx, id); err != nil {
		return internalError(c)
	}

	fireEvent(h.Events, queue.ActivityEvent{
		Event: queue.EventProductDeleted, UserID: u.ID, ProductID: id,
		Name: p.Name, Category: p.Category,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}

// Browse handles GET /v1/products: the unauthenticated marketplace
// listing of available products, optionally filtered by category and
// the organic/featured flags.
func (h *ProductHandler) Browse(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	f := repository.BrowseFilter{
		Category: c.QueryParam("category"),
		Organic:  c.QueryParam("organic") == "true",
		Featured: c.QueryParam("featured") == "true",
	}
	if f.Category != "" && !model.ValidProductCategory(f.Category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}
	products, err := h.Products.ListAvailable(ctx, f)
	if err != nil {
		return internalError(c)
	}
	if products == nil {
		products = []*model.Product{}
	}
	return c.JSON(http.StatusOK, echo.Map{"products": products})
}
