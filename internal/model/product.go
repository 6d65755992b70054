package model

import (
	"errors"
	"time"
)

// Product categories and measurement units accepted by the API. These
// mirror the enumerations enforced by the persisted schema.
var (
	ProductCategories = []string{
		"Vegetables", "Fruits", "Dairy", "Eggs", "Meat",
		"Herbs", "Honey", "Bakery", "Processed", "Other",
	}
	ProductUnits = []string{
		"kg", "lb", "piece", "bunch", "dozen",
		"liter", "pint", "quart", "gallon",
	}
)

// ValidProductCategory reports whether s is a known product category.
func ValidProductCategory(s string) bool { return contains(ProductCategories, s) }

// ValidProductUnit reports whether s is a known measurement unit.
func ValidProductUnit(s string) bool { return contains(ProductUnits, s) }

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// Product represents a row in the `products` table. Image references are
// stored as a JSON array column so a product is always written atomically
// as a single row.
//
// Fields:
//  ID                – primary key identifier.
//  FarmerID          – references users.id; the owner. Always taken from
//                      the session, never from the request payload.
//  Name, Description – required display fields.
//  Category          – one of ProductCategories.
//  Images            – non-empty list of asset URLs.
//  Price             – non-negative price per unit.
//  Unit              – one of ProductUnits.
//  QuantityAvailable – non-negative stock count.
//  IsOrganic, IsFeatured, IsAvailable – listing flags.
//  HarvestDate, ExpiryDate – optional dates.
type Product struct {
	ID                uint64     `json:"id"`
	FarmerID          uint64     `json:"farmer"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Category          string     `json:"category"`
	Images            []string   `json:"images"`
	Price             float64    `json:"price"`
	Unit              string     `json:"unit"`
	QuantityAvailable float64    `json:"quantityAvailable"`
	IsOrganic         bool       `json:"isOrganic"`
	IsFeatured        bool       `json:"isFeatured"`
	IsAvailable       bool       `json:"isAvailable"`
	HarvestDate       *time.Time `json:"harvestDate,omitempty"`
	ExpiryDate        *time.Time `json:"expiryDate,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Validate checks the invariants a product must satisfy before it is
// written: required fields present, enums known, numbers non-negative,
// at least one image reference.
func (p *Product) Validate() error {
	if p.Name == "" || p.Description == "" || p.Category == "" || p.Unit == "" {
		return errors.New("name, description, category, price, unit, and at least one image are required")
	}
	if len(p.Images) == 0 {
		return errors.New("at least one image is required")
	}
	for _, img := range p.Images {
		if img == "" {
			return errors.New("image references must not be empty")
		}
	}
	if !ValidProductCategory(p.Category) {
		return errors.New("unknown category")
	}
	if !ValidProductUnit(p.Unit) {
		return errors.New("unknown unit")
	}
	if p.Price < 0 {
		return errors.New("price must not be negative")
	}
	if p.QuantityAvailable < 0 {
		return errors.New("quantity must not be negative")
	}
	return nil
}
