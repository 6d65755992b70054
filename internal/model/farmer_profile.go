package model

import (
	"errors"
	"time"
)

// Farming methods a profile may declare. Unknown values are rejected.
var FarmingMethods = []string{
	"Organic", "Conventional", "Hydroponic", "Permaculture",
	"Biodynamic", "Sustainable", "Other",
}

// ValidFarmingMethod reports whether s is a known farming method.
func ValidFarmingMethod(s string) bool { return contains(FarmingMethods, s) }

// Coordinates is an optional lat/lng pair inside an Address.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address is the structured farm location embedded in a profile.
type Address struct {
	Street      string       `json:"street"`
	City        string       `json:"city"`
	State       string       `json:"state"`
	ZipCode     string       `json:"zipCode"`
	Country     string       `json:"country"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// ContactInfo holds how consumers can reach the farm.
type ContactInfo struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website,omitempty"`
}

// Certification is a credential held by the farm, e.g. an organic
// certification with its issuer and validity window.
type Certification struct {
	Name       string     `json:"name"`
	IssuedBy   string     `json:"issuedBy"`
	IssuedDate time.Time  `json:"issuedDate"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
	Image      string     `json:"image,omitempty"`
}

// SocialMedia holds optional profile links.
type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

// FarmerProfile represents a row in the `farmer_profiles` table. There is
// at most one profile per user (UNIQUE index on user_id); saves are atomic
// upserts keyed by that index. Nested structures are stored as JSON
// columns so a save is always a single-row write.
type FarmerProfile struct {
	ID              uint64          `json:"id"`
	UserID          uint64          `json:"user"`
	FarmName        string          `json:"farmName"`
	Description     string          `json:"description"`
	ProfileImage    string          `json:"profileImage"`
	CoverImage      string          `json:"coverImage,omitempty"`
	Address         Address         `json:"address"`
	ContactInfo     ContactInfo     `json:"contactInfo"`
	FarmingMethods  []string        `json:"farmingMethods"`
	Certifications  []Certification `json:"certifications"`
	Gallery         []string        `json:"gallery"`
	SocialMedia     SocialMedia     `json:"socialMedia"`
	EstablishedYear int             `json:"establishedYear,omitempty"`
	FarmSize        string          `json:"farmSize,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Validate checks the profile invariants before a save.
func (p *FarmerProfile) Validate(now time.Time) error {
	if p.FarmName == "" || p.Description == "" || p.ProfileImage == "" {
		return errors.New("farm name, description, and profile image are required")
	}
	for _, m := range p.FarmingMethods {
		if !ValidFarmingMethod(m) {
			return errors.New("unknown farming method")
		}
	}
	for _, c := range p.Certifications {
		if c.Name == "" || c.IssuedBy == "" || c.IssuedDate.IsZero() {
			return errors.New("certifications require name, issuer, and issue date")
		}
	}
	if p.EstablishedYear != 0 && (p.EstablishedYear < 1900 || p.EstablishedYear > now.Year()) {
		return errors.New("established year out of range")
	}
	return nil
}
