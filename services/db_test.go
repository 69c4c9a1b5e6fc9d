package services

import (
	"context"
	"testing"

	"liga/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with the schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Player{},
		&models.TeamPlayer{},
		&models.Article{},
	))
	return db
}

func seedTeam(t *testing.T, teams *TeamService, in TeamInput) *models.Team {
	t.Helper()
	team, err := teams.CreateTeam(context.Background(), in)
	require.NoError(t, err)
	return team
}
