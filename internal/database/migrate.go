package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate applies the schema idempotently at startup. Every statement is
// CREATE TABLE IF NOT EXISTS, so repeated runs are no-ops. The unique
// indexes carry the data-model invariants: one account per email, one
// profile per user, one category per slug.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NULL,
			role ENUM('FARMER','CONSUMER','ADMIN') NOT NULL DEFAULT 'CONSUMER',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			description TEXT NULL,
			image_url VARCHAR(1024) NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_categories_slug (slug)
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			farmer_id BIGINT UNSIGNED NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			category VARCHAR(64) NOT NULL,
			images JSON NOT NULL,
			price DECIMAL(10,2) NOT NULL,
			unit VARCHAR(32) NOT NULL,
			quantity_available DECIMAL(10,2) NOT NULL DEFAULT 0,
			is_organic TINYINT(1) NOT NULL DEFAULT 0,
			is_featured TINYINT(1) NOT NULL DEFAULT 0,
			is_available TINYINT(1) NOT NULL DEFAULT 1,
			harvest_date DATETIME NULL,
			expiry_date DATETIME NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			KEY idx_products_farmer (farmer_id),
			KEY idx_products_category (category),
			CONSTRAINT fk_products_farmer FOREIGN KEY (farmer_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS farmer_profiles (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT UNSIGNED NOT NULL,
			farm_name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			profile_image VARCHAR(1024) NOT NULL,
			cover_image VARCHAR(1024) NULL,
			address JSON NULL,
			contact_info JSON NULL,
			farming_methods JSON NULL,
			certifications JSON NULL,
			gallery JSON NULL,
			social_media JSON NULL,
			established_year SMALLINT UNSIGNED NULL,
			farm_size VARCHAR(64) NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_farmer_profiles_user (user_id),
			CONSTRAINT fk_farmer_profiles_user FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
