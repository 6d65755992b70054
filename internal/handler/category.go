package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/muhammadafan/fresh-harvest-connect/internal/model"
	"github.com/muhammadafan/fresh-harvest-connect/internal/repository"
)

// CategoryHandler serves the category listing and administrative
// creation.
type CategoryHandler struct {
	Users      UserStore
	Categories CategoryStore
}

func NewCategoryHandler(users UserStore, categories CategoryStore) *CategoryHandler {
	return &CategoryHandler{Users: users, Categories: categories}
}

type categoryReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// List handles GET /categories: all categories ordered by name, public.
func (h *CategoryHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	categories, err := h.Categories.List(ctx)
	if err != nil {
		return internalError(c)
	}
	if categories == nil {
		categories = []*model.Category{}
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}

// Create handles POST /categories. ADMIN only, re-verified against the
// stored user record. The slug is derived from the name; two names that
// normalize to the same slug conflict.
func (h *CategoryHandler) Create(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, ok := requireStoredUser(ctx, c, h.Users)
	if !ok || u.Role != model.RoleAdmin {
		return unauthorized(c)
	}
	var req categoryReq
	if err := bindJSON(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	slug := model.Slugify(req.Name)
	if slug == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must contain letters or digits"})
	}
	cat := &model.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := h.Categories.Create(ctx, cat); err != nil {
		if errors.Is(err, repository.ErrSlugExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "category with this name already exists"})
		}
		return internalError(c)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "category created successfully",
		"category": cat,
	})
}
