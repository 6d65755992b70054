// Command seed populates the marketplace with the stock category set
// and, when ADMIN_EMAIL and ADMIN_PASSWORD are set, an administrator
// account. Safe to run repeatedly: existing rows are left alone.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/muhammadafan/fresh-harvest-connect/internal/config"
	"github.com/muhammadafan/fresh-harvest-connect/internal/database"
	"github.com/muhammadafan/fresh-harvest-connect/internal/logger"
	"github.com/muhammadafan/fresh-harvest-connect/internal/model"
	"github.com/muhammadafan/fresh-harvest-connect/internal/repository"
)

var stockCategories = []struct {
	name        string
	description string
}{
	{"Vegetables", "Fresh vegetables directly from farms."},
	{"Fruits", "Fresh fruits of all varieties."},
	{"Dairy", "Fresh dairy products including milk, cheese and yogurt."},
	{"Eggs", "Farm fresh eggs from free-range chickens."},
	{"Meat", "Farm raised meats, including beef, chicken, pork and more."},
	{"Herbs", "Fresh culinary and medicinal herbs."},
	{"Honey", "Local honey and bee products."},
	{"Bakery", "Fresh baked goods made with farm ingredients."},
	{"Processed", "Jams, preserves, pickles and other processed farm goods."},
	{"Other", "Other farm products that don't fit in the above categories."},
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.Env, os.Stderr)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	categories := repository.NewCategoryRepo(db)
	created := 0
	for _, sc := range stockCategories {
		cat := &model.Category{
			Name:        sc.name,
			Slug:        model.Slugify(sc.name),
			Description: sc.description,
		}
		err := categories.Create(ctx, cat)
		switch {
		case err == nil:
			created++
		case errors.Is(err, repository.ErrSlugExists):
			// already seeded
		default:
			log.Fatal().Err(err).Str("category", sc.name).Msg("seeding category failed")
		}
	}
	log.Info().Int("created", created).Int("total", len(stockCategories)).Msg("categories seeded")

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Info().Msg("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin account")
		return
	}

	users := repository.NewUserRepo(db)
	_, err = users.Create(ctx, "Administrator", email, password, model.RoleAdmin, cfg.BcryptCost)
	switch {
	case err == nil:
		log.Info().Str("email", email).Msg("admin account created")
	case errors.Is(err, repository.ErrEmailExists):
		log.Info().Str("email", email).Msg("admin account already exists")
	default:
		log.Fatal().Err(err).Msg("creating admin account failed")
	}
}
