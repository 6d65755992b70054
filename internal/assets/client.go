// Package assets relays uploaded files to the external asset-hosting
// service and hands back the stable reference URL. Nothing is stored
// locally; the returned URL is what product and profile records persist.
package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no asset host URL is set.
var ErrNotConfigured = errors.New("asset host not configured")

// UploadResult is the reference returned by the asset host.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Client talks to the asset host over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds an asset-host client. baseURL may be empty, in which
// case every upload fails with ErrNotConfigured.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload forwards one file to the asset host under the given folder and
// returns the hosted URL and public id. The file content is streamed
// through a pipe so large uploads are not buffered in memory.
func (c *Client) Upload(ctx context.Context, folder, filename string, file io.Reader) (UploadResult, error) {
	if c.baseURL == "" {
		return UploadResult{}, ErrNotConfigured
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		var err error
		defer func() { _ = pw.CloseWithError(err) }()
		if err = mw.WriteField("folder", "fresh-harvest/"+folder); err != nil {
			return
		}
		var part io.Writer
		if part, err = mw.CreateFormFile("file", filename); err != nil {
			return
		}
		if _, err = io.Copy(part, file); err != nil {
			return
		}
		err = mw.Close()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", pr)
	if err != nil {
		return UploadResult{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return UploadResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return UploadResult{}, fmt.Errorf("asset host returned %d", resp.StatusCode)
	}

	// Some hosts name the field secure_url, some url; accept either.
	var raw struct {
		URL       string `json:"url"`
		SecureURL string `json:"secure_url"`
		PublicID  string `json:"public_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return UploadResult{}, err
	}
	out := UploadResult{URL: raw.SecureURL, PublicID: raw.PublicID}
	if out.URL == "" {
		out.URL = raw.URL
	}
	if out.URL == "" {
		return UploadResult{}, errors.New("asset host response missing url")
	}
	return out, nil
}
