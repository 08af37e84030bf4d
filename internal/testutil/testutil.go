// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"issueboard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a private in-memory sqlite database with the board schema.
// It is limited to one connection so every statement sees the same memory
// database; repositories must therefore never touch the root handle inside a
// transaction.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// CreateUser inserts a user and returns it.
func CreateUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{Email: email, Name: "Test User", HashedPassword: "hashed"}
	require.NoError(t, db.Create(user).Error)
	return user
}
