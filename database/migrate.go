// database/migrate.go - Database Migration Runner
package database

import (
	"fmt"
	"liga/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RunMigrations creates or updates every table and its indexes.
func RunMigrations(db *gorm.DB) error {
	log.Info().Msg("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Player{},
		&models.TeamPlayer{},
		&models.Article{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return err
	}

	log.Info().Msg("✅ All migrations completed successfully")
	return nil
}

var indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_times_temporada_nome ON times(temporada, nome)",
	"CREATE INDEX IF NOT EXISTS idx_jogador_times_season ON jogador_times(temporada, jogador_id)",
	"CREATE INDEX IF NOT EXISTS idx_jogador_times_team_season ON jogador_times(time_id, temporada)",
	"CREATE INDEX IF NOT EXISTS idx_materias_created ON materias(created_at DESC)",
}

func createIndexes(db *gorm.DB) error {
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
