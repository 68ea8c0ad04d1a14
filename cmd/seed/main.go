package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/config"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/db"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/logger"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/repository"
)

var defaultSettings = map[string]string{
	"site_name":     "Beatrice Cherono Melly Foundation",
	"contact_email": "info@beatricecherono.org",
	"hero_heading":  "Empowering communities through education",
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Environment)
	log.Info().Msg("starting seed script")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Permission{},
		&model.Setting{},
	); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	settingRepo := repository.NewSettingRepository(gormDB)

	adminEmail := envOr("ADMIN_EMAIL", "admin@beatricecherono.org")
	adminPassword := envOr("ADMIN_PASSWORD", "change-me-now")

	existing, err := userRepo.FindByEmail(ctx, adminEmail)
	switch {
	case err == nil && existing != nil:
		log.Info().Str("email", adminEmail).Msg("admin user already present")
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 10)
		if err != nil {
			log.Fatal().Err(err).Msg("hash admin password")
		}
		admin := &model.User{
			Name:         "Site Administrator",
			Email:        adminEmail,
			PasswordHash: string(hash),
			Provider:     model.ProviderCredentials,
			Role:         model.RoleAdmin,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatal().Err(err).Msg("create admin user")
		}
		log.Info().Str("email", adminEmail).Msg("admin user created")
	default:
		log.Fatal().Err(err).Msg("check admin user")
	}

	for key, value := range defaultSettings {
		if _, err := settingRepo.FindByKey(ctx, key); err == nil {
			continue
		}
		if _, err := settingRepo.Upsert(ctx, key, value); err != nil {
			log.Fatal().Err(err).Str("key", key).Msg("seed setting")
		}
		log.Info().Str("key", key).Msg("setting seeded")
	}

	log.Info().Msg("seed completed")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
