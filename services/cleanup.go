package services

import (
	"context"

	"liga/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CleanupService removes rows left behind by deletes, such as players
// whose every team link was removed along with their team.
type CleanupService struct {
	db *gorm.DB
}

func NewCleanupService(db *gorm.DB) *CleanupService {
	return &CleanupService{db: db}
}

// PruneOrphanPlayers deletes players without any season link and returns
// how many were removed.
func (s *CleanupService) PruneOrphanPlayers(ctx context.Context) (int64, error) {
	var orphans []models.Player
	err := s.db.WithContext(ctx).
		Where("id NOT IN (SELECT DISTINCT jogador_id FROM jogador_times)").
		Find(&orphans).Error
	if err != nil {
		return 0, storeError("buscar jogadores sem vínculo", err)
	}

	if len(orphans) == 0 {
		log.Ctx(ctx).Debug().Msg("no orphan players to prune")
		return 0, nil
	}

	ids := make([]uint, len(orphans))
	for i, p := range orphans {
		ids[i] = p.ID
	}

	res := s.db.WithContext(ctx).Delete(&models.Player{}, ids)
	if res.Error != nil {
		return 0, storeError("remover jogadores sem vínculo", res.Error)
	}

	log.Ctx(ctx).Info().Int64("removidos", res.RowsAffected).Msg("orphan players pruned")
	return res.RowsAffected, nil
}
