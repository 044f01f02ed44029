// Command seed creates a portal account. Accounts are only ever created this
// way; the server exposes no registration endpoint.
//
//	seed -username test_user -password password123 -displayname "Test User"
package main

import (
	"context"
	"flag"
	"time"

	"github.com/teamhub/portal/internal/core/domain"
	"github.com/teamhub/portal/internal/core/service"
	mongodb "github.com/teamhub/portal/internal/infrastructure/db/mongo"
	"github.com/teamhub/portal/internal/pkg/config"
	"github.com/teamhub/portal/pkg/logger"
)

func main() {
	username := flag.String("username", "", "account username (unique)")
	password := flag.String("password", "", "account password (stored hashed)")
	displayName := flag.String("displayname", "", "name shown on the home page")
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	if *username == "" || *password == "" {
		log.Fatal().Msg("-username and -password are required")
	}
	if *displayName == "" {
		*displayName = *username
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	repo := mongodb.NewUserRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	hash, err := service.HashPassword(*password)
	if err != nil {
		log.Fatal().Err(err).Msg("password hashing failed")
	}

	now := time.Now().UTC()
	user, err := repo.Create(ctx, &domain.User{
		Username:     *username,
		DisplayName:  *displayName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Fatal().Err(err).Str("username", *username).Msg("account creation failed")
	}

	log.Info().Str("id", user.ID).Str("username", user.Username).Msg("account created")
}
