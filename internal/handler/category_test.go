package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/muhammadafan/fresh-harvest-connect/internal/model"
)

func TestCategoryListPublic(t *testing.T) {
	v := newEnv(t)
	rec := v.do(http.MethodGet, "/categories", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"categories":[]`) {
		t.Errorf("empty list should encode as [], got %s", rec.Body)
	}
}

func TestCategoryCreateRequiresAdmin(t *testing.T) {
	v := newEnv(t)
	body := `{"name":"Vegetables","description":"Fresh vegetables"}`

	rec := v.do(http.MethodPost, "/categories", "", body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	_, farmer := v.addUser(t, model.RoleFarmer)
	rec = v.do(http.MethodPost, "/categories", farmer, body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("farmer: status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	_, admin := v.addUser(t, model.RoleAdmin)
	rec = v.do(http.MethodPost, "/categories", admin, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin: status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"slug":"vegetables"`) {
		t.Errorf("slug not derived: %s", rec.Body)
	}
}

// Two names normalizing to the same slug conflict.
func TestCategoryCreateSlugConflict(t *testing.T) {
	v := newEnv(t)
	_, admin := v.addUser(t, model.RoleAdmin)

	rec := v.do(http.MethodPost, "/categories", admin, `{"name":"Fresh Herbs"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create: status = %d: %s", rec.Code, rec.Body)
	}
	rec = v.do(http.MethodPost, "/categories", admin, `{"name":"Fresh  Herbs!"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("conflicting create: status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestCategoryCreateRejectsEmptyName(t *testing.T) {
	v := newEnv(t)
	_, admin := v.addUser(t, model.RoleAdmin)

	rec := v.do(http.MethodPost, "/categories", admin, `{"name":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank name: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	rec = v.do(http.MethodPost, "/categories", admin, `{"name":"!!!"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("symbol-only name: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
