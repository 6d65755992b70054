package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/muhammadafan/fresh-harvest-connect/internal/model"
	"github.com/muhammadafan/fresh-harvest-connect/internal/repository"
)

// ProfileHandler serves the farmer profile read and upsert endpoints.
type ProfileHandler struct {
	Users    UserStore
	Profiles ProfileStore
}

func NewProfileHandler(users UserStore, profiles ProfileStore) *ProfileHandler {
	return &ProfileHandler{Users: users, Profiles: profiles}
}

// profileReq is the typed request body for a profile save.
type profileReq struct {
	FarmName        string                `json:"farmName"`
	Description     string                `json:"description"`
	ProfileImage    string                `json:"profileImage"`
	CoverImage      string                `json:"coverImage"`
	Address         model.Address         `json:"address"`
	ContactInfo     model.ContactInfo     `json:"contactInfo"`
	FarmingMethods  []string              `json:"farmingMethods"`
	Certifications  []model.Certification `json:"certifications"`
	Gallery         []string              `json:"gallery"`
	SocialMedia     model.SocialMedia     `json:"socialMedia"`
	EstablishedYear int                   `json:"establishedYear"`
	FarmSize        string                `json:"farmSize"`
}

// Get handles GET /farmer/profile: the caller's own profile. Any
// authenticated session may read it (the dashboard shows profile state
// to consumers deciding to become farmers); only saving requires the
// FARMER role.
func (h *ProfileHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	id, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	p, err := h.Profiles.GetByUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": p})
}

// Save handles POST /farmer/profile: create-or-update keyed by the
// caller's identity. The store performs the upsert as one atomic write
// against the unique user index, so a resubmitted save updates the
// existing document instead of creating a second one, even when two
// saves race.
func (h *ProfileHandler) Save(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, ok := requireStoredUser(ctx, c, h.Users)
	if !ok || u.Role != model.RoleFarmer {
		return unauthorized(c)
	}
	var req profileReq
	if err := bindJSON(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p := &model.FarmerProfile{
		UserID:          u.ID,
		FarmName:        req.FarmName,
		Description:     req.Description,
		ProfileImage:    req.ProfileImage,
		CoverImage:      req.CoverImage,
		Address:         req.Address,
		ContactInfo:     req.ContactInfo,
		FarmingMethods:  req.FarmingMethods,
		Certifications:  req.Certifications,
		Gallery:         req.Gallery,
		SocialMedia:     req.SocialMedia,
		EstablishedYear: req.EstablishedYear,
		FarmSize:        req.FarmSize,
	}
	if err := p.Validate(time.Now()); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Profiles.Upsert(ctx, p); err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "profile saved successfully",
		"profile": p,
	})
}
