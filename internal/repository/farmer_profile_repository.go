package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/muhammadafan/fresh-harvest-connect/internal/model"
)

// ProfileRepo encapsulates all database queries against the
// farmer_profiles table. The table carries a UNIQUE index on user_id,
// which both enforces the one-profile-per-user invariant and lets the
// save be expressed as a single atomic insert-or-update. Nested profile
// data (address, contact info, certifications, gallery, social media,
// farming methods) lives in JSON columns so every save is one row write.
type ProfileRepo struct{ db *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

// Upsert creates the caller's profile or updates it in place, keyed by
// the unique user_id index. Two concurrent saves for the same user
// cannot produce two rows: the database resolves the race, not a
// check-then-act sequence in application code.
func (r *ProfileRepo) Upsert(ctx context.Context, p *model.FarmerProfile) error {
	address, err := json.Marshal(p.Address)
	if err != nil {
		return err
	}
	contact, err := json.Marshal(p.ContactInfo)
	if err != nil {
		return err
	}
	methods, err := json.Marshal(p.FarmingMethods)
	if err != nil {
		return err
	}
	certs, err := json.Marshal(p.Certifications)
	if err != nil {
		return err
	}
	gallery, err := json.Marshal(p.Gallery)
	if err != nil {
		return err
	}
	social, err := json.Marshal(p.SocialMedia)
	if err != nil {
		return err
	}

	const q = `INSERT INTO farmer_profiles
		(user_id, farm_name, description, profile_image, cover_image,
		 address, contact_info, farming_methods, certifications, gallery,
		 social_media, established_year, farm_size)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
		 farm_name = VALUES(farm_name),
		 description = VALUES(description),
		 profile_image = VALUES(profile_image),
		 cover_image = VALUES(cover_image),
		 address = VALUES(address),
		 contact_info = VALUES(contact_info),
		 farming_methods = VALUES(farming_methods),
		 certifications = VALUES(certifications),
		 gallery = VALUES(gallery),
		 social_media = VALUES(social_media),
		 established_year = VALUES(established_year),
		 farm_size = VALUES(farm_size),
		 updated_at = CURRENT_TIMESTAMP`
	var year any
	if p.EstablishedYear != 0 {
		year = p.EstablishedYear
	}
	if _, err := r.db.ExecContext(ctx, q, p.UserID, p.FarmName, p.Description,
		p.ProfileImage, p.CoverImage, address, contact, methods, certs,
		gallery, social, year, p.FarmSize); err != nil {
		return err
	}
	saved, err := r.GetByUser(ctx, p.UserID)
	if err != nil {
		return err
	}
	*p = *saved
	return nil
}

// GetByUser fetches the profile owned by a user. Returns ErrNotFound
// when the user has not created one yet.
func (r *ProfileRepo) GetByUser(ctx context.Context, userID uint64) (*model.FarmerProfile, error) {
	const q = `SELECT id, user_id, farm_name, description, profile_image, cover_image,
		address, contact_info, farming_methods, certifications, gallery,
		social_media, established_year, farm_size, created_at, updated_at
		FROM farmer_profiles WHERE user_id = ? LIMIT 1`
	var p model.FarmerProfile
	var cover, farmSize sql.NullString
	var year sql.NullInt64
	var address, contact, methods, certs, gallery, social []byte
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&p.ID, &p.UserID,
		&p.FarmName, &p.Description, &p.ProfileImage, &cover,
		&address, &contact, &methods, &certs, &gallery, &social,
		&year, &farmSize, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.CoverImage = cover.String
	p.FarmSize = farmSize.String
	p.EstablishedYear = int(year.Int64)
	for _, pair := range []struct {
		raw []byte
		dst any
	}{
		{address, &p.Address},
		{contact, &p.ContactInfo},
		{methods, &p.FarmingMethods},
		{certs, &p.Certifications},
		{gallery, &p.Gallery},
		{social, &p.SocialMedia},
	} {
		if len(pair.raw) > 0 {
			if err := json.Unmarshal(pair.raw, pair.dst); err != nil {
				return nil, err
			}
		}
	}
	return &p, nil
}
