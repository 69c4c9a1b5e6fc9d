// database/roster_store.go - GORM-backed store for the season rollover
package database

import (
	"context"
	"errors"

	"liga/models"
	"liga/services"

	"gorm.io/gorm"
)

// RosterStore implements services.RosterStore on top of GORM.
type RosterStore struct {
	db *gorm.DB
}

func NewRosterStore(db *gorm.DB) *RosterStore {
	return &RosterStore{db: db}
}

var _ services.RosterStore = (*RosterStore)(nil)

// InTransaction runs fn with a store bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *RosterStore) InTransaction(ctx context.Context, fn func(tx services.RosterStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RosterStore{db: tx})
	})
}

func (s *RosterStore) TeamsBySeason(ctx context.Context, season string) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.WithContext(ctx).
		Where("temporada = ?", season).
		Order("id ASC").
		Find(&teams).Error
	return teams, err
}

// LinksBySeason returns the season's links with their players, oldest first.
func (s *RosterStore) LinksBySeason(ctx context.Context, season string) ([]models.TeamPlayer, error) {
	var links []models.TeamPlayer
	err := s.db.WithContext(ctx).
		Where("temporada = ?", season).
		Preload("Jogador").
		Order("id ASC").
		Find(&links).Error
	return links, err
}

func (s *RosterStore) FindTeam(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team
	err := s.db.WithContext(ctx).First(&team, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *RosterStore) CreateTeam(ctx context.Context, team *models.Team) error {
	return s.db.WithContext(ctx).Omit("Jogadores").Create(team).Error
}

func (s *RosterStore) CreateLink(ctx context.Context, link *models.TeamPlayer) error {
	return s.db.WithContext(ctx).Omit("Jogador", "Time").Create(link).Error
}
