package service

import (
	"testing"

	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/model"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// a single in-memory connection; a second one would see an empty schema
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Workspace{},
		&model.TeamMember{},
		&model.Bounty{},
		&model.KanbanBoard{},
		&model.Task{},
		&model.Chat{},
		&model.Message{},
		&model.OperationLog{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

// closeTestDB tears the connection down so store calls start failing, for
// tests asserting that infrastructure errors propagate.
func closeTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close sql.DB: %v", err)
	}
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) *model.User {
	t.Helper()

	user := &model.User{Name: name, Email: email, Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}
