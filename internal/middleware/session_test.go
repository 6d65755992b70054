package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/muhammadafan/fresh-harvest-connect/internal/model"
	"github.com/muhammadafan/fresh-harvest-connect/internal/utils"
)

func sessionApp(secret string, mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	chain := append([]echo.MiddlewareFunc{Session(secret)}, mw...)
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	}, chain...)
	return e
}

func TestSessionRejectsMissingToken(t *testing.T) {
	e := sessionApp("secret")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestSessionRejectsBadToken(t *testing.T) {
	tok, err := utils.NewSessionToken("other-secret", 5, model.RoleConsumer, 30)
	if err != nil {
		t.Fatal(err)
	}
	e := sessionApp("secret")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestSessionAcceptsBearerHeader(t *testing.T) {
	tok, err := utils.NewSessionToken("secret", 5, model.RoleFarmer, 30)
	if err != nil {
		t.Fatal(err)
	}
	e := sessionApp("secret")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}
}

func TestSessionAcceptsCookie(t *testing.T) {
	tok, err := utils.NewSessionToken("secret", 5, model.RoleConsumer, 30)
	if err != nil {
		t.Fatal(err)
	}
	e := sessionApp("secret")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tok.Token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}
}

func TestRequireRole(t *testing.T) {
	farmerTok, err := utils.NewSessionToken("secret", 5, model.RoleFarmer, 30)
	if err != nil {
		t.Fatal(err)
	}
	consumerTok, err := utils.NewSessionToken("secret", 6, model.RoleConsumer, 30)
	if err != nil {
		t.Fatal(err)
	}
	e := sessionApp("secret", RequireRole(model.RoleFarmer))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+farmerTok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("farmer: status = %d, want %d", rec.Code, http.StatusOK)
	}

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+consumerTok.Token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("consumer: status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
