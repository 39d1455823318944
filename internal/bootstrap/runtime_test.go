package bootstrap

import (
	"testing"

	"reunion/internal/config"
	"reunion/internal/database"
	"reunion/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupBootstrapDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestEnsureDevAccounts_CreatesOnce(t *testing.T) {
	t.Parallel()
	db := setupBootstrapDB(t)
	cfg := &config.Config{Env: "development"}

	require.NoError(t, ensureDevAccounts(cfg, db))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, len(devAccounts), count)

	// Running again must not duplicate accounts.
	require.NoError(t, ensureDevAccounts(cfg, db))
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, len(devAccounts), count)
}

func TestEnsureDevAccounts_SkippedInProduction(t *testing.T) {
	t.Parallel()
	db := setupBootstrapDB(t)
	cfg := &config.Config{Env: "production"}

	require.NoError(t, ensureDevAccounts(cfg, db))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
