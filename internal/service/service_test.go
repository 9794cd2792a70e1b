package service

import (
	"fmt"
	"testing"
	"time"

	"spc-api/internal/model"
	"spc-api/pkg/config"
	"spc-api/pkg/jwtutil"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database migrated with all models. Each
// test gets its own database so state cannot leak between tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Supplier{},
		&model.Drug{},
		&model.Stock{},
		&model.Order{},
		&model.OrderItem{},
	)
	require.NoError(t, err)

	return db
}

// testJWTConfig initializes the JWT utility with test settings and returns
// the config used by the auth service
func testJWTConfig(t *testing.T) *config.JWTConfig {
	t.Helper()

	cfg := &config.JWTConfig{
		SigningKey:           "test-signing-key",
		Issuer:               "spc-api",
		Audience:             "spc-clients",
		AccessTokenLifetime:  30 * time.Minute,
		RefreshTokenLifetime: 7 * 24 * time.Hour,
	}
	jwtutil.Initialize(cfg)
	return cfg
}
