package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/muhammadafan/fresh-harvest-connect/internal/assets"
	"github.com/muhammadafan/fresh-harvest-connect/internal/middleware"
	"github.com/muhammadafan/fresh-harvest-connect/internal/model"
	"github.com/muhammadafan/fresh-harvest-connect/internal/utils"
)

type fakeUploader struct {
	folder string
	name   string
	err    error
}

func (f *fakeUploader) Upload(_ context.Context, folder, filename string, file io.Reader) (assets.UploadResult, error) {
	if f.err != nil {
		return assets.UploadResult{}, f.err
	}
	f.folder = folder
	f.name = filename
	io.Copy(io.Discard, file)
	return assets.UploadResult{URL: "https://cdn.example/" + filename, PublicID: "fresh-harvest/" + folder + "/abc"}, nil
}

func uploadApp(u Uploader) *echo.Echo {
	e := echo.New()
	e.POST("/upload", NewUploadHandler(u).Relay, middleware.Session(testSecret))
	return e
}

func multipartBody(t *testing.T, folder, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if folder != "" {
		if err := mw.WriteField("folder", folder); err != nil {
			t.Fatal(err)
		}
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("image-bytes"))
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func uploadRequest(t *testing.T, e *echo.Echo, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionToken(t *testing.T) string {
	t.Helper()
	tok, err := utils.NewSessionToken(testSecret, 1, model.RoleFarmer, 30)
	if err != nil {
		t.Fatal(err)
	}
	return tok.Token
}

func TestUploadRequiresSession(t *testing.T) {
	e := uploadApp(&fakeUploader{})
	body, ct := multipartBody(t, "", "farm.jpg")
	rec := uploadRequest(t, e, "", body, ct)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestUploadRelaysFile(t *testing.T) {
	fu := &fakeUploader{}
	e := uploadApp(fu)
	body, ct := multipartBody(t, "products", "tomato.jpg")
	rec := uploadRequest(t, e, sessionToken(t), body, ct)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if fu.folder != "products" || fu.name != "tomato.jpg" {
		t.Errorf("relayed folder/name = %q/%q", fu.folder, fu.name)
	}
	if !strings.Contains(rec.Body.String(), `"url"`) || !strings.Contains(rec.Body.String(), `"public_id"`) {
		t.Errorf("response missing url/public_id: %s", rec.Body)
	}
}

func TestUploadDefaultFolder(t *testing.T) {
	fu := &fakeUploader{}
	e := uploadApp(fu)
	body, ct := multipartBody(t, "", "farm.jpg")
	rec := uploadRequest(t, e, sessionToken(t), body, ct)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if fu.folder != "farmer-profiles" {
		t.Errorf("folder = %q, want farmer-profiles", fu.folder)
	}
}

func TestUploadMissingFile(t *testing.T) {
	e := uploadApp(&fakeUploader{})
	rec := uploadRequest(t, e, sessionToken(t), strings.NewReader(""), "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUploadHostUnavailable(t *testing.T) {
	e := uploadApp(&fakeUploader{err: assets.ErrNotConfigured})
	body, ct := multipartBody(t, "", "farm.jpg")
	rec := uploadRequest(t, e, sessionToken(t), body, ct)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestUploadHostFailure(t *testing.T) {
	e := uploadApp(&fakeUploader{err: errors.New("connection refused")})
	body, ct := multipartBody(t, "", "farm.jpg")
	rec := uploadRequest(t, e, sessionToken(t), body, ct)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
}
