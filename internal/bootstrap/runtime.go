// Package bootstrap wires up runtime dependencies shared by the server and
// auxiliary commands.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reunion/internal/cache"
	"reunion/internal/config"
	"reunion/internal/database"
	"reunion/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// EnsureDevAccounts creates the well-known development login accounts
	// when running outside production.
	EnsureDevAccounts bool
}

// InitRuntime connects to the database and Redis. The Redis client may be nil
// when the cache is unreachable; callers are expected to degrade gracefully.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.EnsureDevAccounts {
		if err := ensureDevAccounts(cfg, db); err != nil {
			return nil, nil, fmt.Errorf("failed to bootstrap development accounts: %w", err)
		}
	}

	return db, r, nil
}

// devAccounts are the accounts local clients assume exist. Authentication is
// credential-only, so without at least one known login a fresh development
// database is unusable.
var devAccounts = []models.User{
	{Name: "Dev User", Email: "dev@reunion.local", Password: "password123"},
	{Name: "Dev Friend", Email: "friend@reunion.local", Password: "password123"},
}

func ensureDevAccounts(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	env := strings.ToLower(cfg.Env)
	if env == "production" || env == "prod" {
		return nil
	}

	ctx := context.Background()
	for _, account := range devAccounts {
		var existing models.User
		err := db.WithContext(ctx).Where("email = ?", account.Email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		user := account
		if err := db.WithContext(ctx).Create(&user).Error; err != nil {
			return err
		}
	}
	return nil
}
