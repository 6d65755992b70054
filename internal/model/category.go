package model

import (
	"strings"
	"time"
)

// Category represents a row in the `categories` table. The slug is
// derived from the name and carries a unique index.
type Category struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Slugify derives a URL-safe identifier from a display name: lower-case,
// runs of non-alphanumeric characters collapse to a single hyphen, and
// leading/trailing hyphens are stripped. "Fresh Herbs!" and "fresh--herbs"
// both slug to "fresh-herbs".
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
