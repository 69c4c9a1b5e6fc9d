// services/player_service.go - Players and their season links
package services

import (
	"context"
	"errors"

	"liga/models"

	"gorm.io/gorm"
)

// PlayerInput creates a player together with the link to a team.
// TimeID and Temporada are only read by PlayerService.CreatePlayer; inside a
// TeamInput the enclosing team decides both.
type PlayerInput struct {
	Nome          string  `json:"nome" yaml:"nome" validate:"required"`
	TimeFormador  string  `json:"timeFormador" yaml:"timeFormador"`
	Posicao       string  `json:"posicao" yaml:"posicao"`
	Setor         string  `json:"setor" yaml:"setor"`
	Experiencia   int     `json:"experiencia" yaml:"experiencia" validate:"min=0"`
	Idade         int     `json:"idade" yaml:"idade" validate:"min=0"`
	Altura        float64 `json:"altura" yaml:"altura" validate:"min=0"`
	Peso          float64 `json:"peso" yaml:"peso" validate:"min=0"`
	Instagram     string  `json:"instagram" yaml:"instagram"`
	Instagram2    string  `json:"instagram2" yaml:"instagram2"`
	Cidade        string  `json:"cidade" yaml:"cidade"`
	Nacionalidade string  `json:"nacionalidade" yaml:"nacionalidade"`
	Numero        int     `json:"numero" yaml:"numero" validate:"min=0,max=99"`
	Camisa        string  `json:"camisa" yaml:"camisa"`
	Estatisticas  Stats   `json:"estatisticas" yaml:"estatisticas"`
	TimeID        uint    `json:"timeId" yaml:"timeId"`
	Temporada     string  `json:"temporada" yaml:"temporada" validate:"omitempty,numeric"`
}

// PlayerUpdate changes a player. Zero values are left untouched. When
// Estatisticas, Numero or Camisa are set, the link of Temporada is updated too.
type PlayerUpdate struct {
	Nome          string  `json:"nome"`
	TimeFormador  string  `json:"timeFormador"`
	Posicao       string  `json:"posicao"`
	Setor         string  `json:"setor"`
	Experiencia   int     `json:"experiencia" validate:"min=0"`
	Idade         int     `json:"idade" validate:"min=0"`
	Altura        float64 `json:"altura" validate:"min=0"`
	Peso          float64 `json:"peso" validate:"min=0"`
	Instagram     string  `json:"instagram"`
	Instagram2    string  `json:"instagram2"`
	Cidade        string  `json:"cidade"`
	Nacionalidade string  `json:"nacionalidade"`
	Numero        *int    `json:"numero,omitempty" validate:"omitempty,min=0,max=99"`
	Camisa        string  `json:"camisa"`
	Estatisticas  Stats   `json:"estatisticas"`
	Temporada     string  `json:"temporada" validate:"omitempty,numeric"`
}

type PlayerService struct {
	db            *gorm.DB
	defaultSeason string
}

func NewPlayerService(db *gorm.DB, defaultSeason string) *PlayerService {
	return &PlayerService{db: db, defaultSeason: defaultSeason}
}

// ListPlayers returns every player with the links of season (all links when empty).
func (s *PlayerService) ListPlayers(ctx context.Context, season string) ([]models.Player, error) {
	var players []models.Player
	err := s.db.WithContext(ctx).
		Preload("Times", func(db *gorm.DB) *gorm.DB {
			if season != "" {
				db = db.Where("temporada = ?", season)
			}
			return db.Order("temporada DESC")
		}).
		Preload("Times.Time").
		Order("nome ASC").
		Find(&players).Error
	if err != nil {
		return nil, storeError("listar jogadores", err)
	}
	return players, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, id uint) (*models.Player, error) {
	var player models.Player
	err := s.db.WithContext(ctx).
		Preload("Times", func(db *gorm.DB) *gorm.DB {
			return db.Order("temporada DESC")
		}).
		Preload("Times.Time").
		First(&player, id).Error
	if err != nil {
		return nil, lookupError("jogador", id, err)
	}
	return &player, nil
}

// CreatePlayer creates a player and links it to in.TimeID for in.Temporada.
func (s *PlayerService) CreatePlayer(ctx context.Context, in PlayerInput) (*models.TeamPlayer, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.TimeID == 0 {
		return nil, &ValidationError{Field: "timeId", Message: "obrigatório"}
	}
	season := in.Temporada
	if season == "" {
		season = s.defaultSeason
	}

	var link *models.TeamPlayer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.First(&team, in.TimeID).Error; err != nil {
			return lookupError("time", in.TimeID, err)
		}
		var err error
		link, err = createPlayerWithLink(tx, in, team.ID, season)
		return err
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// UpdatePlayer applies in to the player and, when season data is present,
// to the player's link for in.Temporada.
func (s *PlayerService) UpdatePlayer(ctx context.Context, id uint, in PlayerUpdate) (*models.Player, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	season := in.Temporada
	if season == "" {
		season = s.defaultSeason
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var player models.Player
		if err := tx.First(&player, id).Error; err != nil {
			return lookupError("jogador", id, err)
		}

		err := tx.Model(&player).Omit("Times").Updates(models.Player{
			Nome:          in.Nome,
			TimeFormador:  in.TimeFormador,
			Posicao:       in.Posicao,
			Setor:         in.Setor,
			Experiencia:   in.Experiencia,
			Idade:         in.Idade,
			Altura:        in.Altura,
			Peso:          in.Peso,
			Instagram:     in.Instagram,
			Instagram2:    in.Instagram2,
			Cidade:        in.Cidade,
			Nacionalidade: in.Nacionalidade,
		}).Error
		if err != nil {
			return storeError("atualizar jogador", err)
		}

		if in.Estatisticas == nil && in.Numero == nil && in.Camisa == "" {
			return nil
		}
		return updateSeasonLink(tx, id, season, in)
	})
	if err != nil {
		return nil, err
	}
	return s.GetPlayer(ctx, id)
}

func updateSeasonLink(tx *gorm.DB, playerID uint, season string, in PlayerUpdate) error {
	var link models.TeamPlayer
	err := tx.Where("jogador_id = ? AND temporada = ?", playerID, season).
		Order("id ASC").
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: "vínculo do jogador na temporada " + season, ID: playerID}
	}
	if err != nil {
		return storeError("buscar vínculo", err)
	}

	updates := map[string]any{}
	if in.Estatisticas != nil {
		stats, err := statsJSON(FilterStats(in.Estatisticas))
		if err != nil {
			return err
		}
		updates["estatisticas"] = stats
	}
	if in.Numero != nil {
		updates["numero"] = *in.Numero
	}
	if in.Camisa != "" {
		updates["camisa"] = in.Camisa
	}
	if err := tx.Model(&link).Updates(updates).Error; err != nil {
		return storeError("atualizar vínculo", err)
	}
	return nil
}

// createPlayerWithLink inserts the player and its link inside tx.
func createPlayerWithLink(tx *gorm.DB, in PlayerInput, teamID uint, season string) (*models.TeamPlayer, error) {
	setor := in.Setor
	if setor == "" {
		setor = models.DefaultSector
	}
	player := &models.Player{
		Nome:          in.Nome,
		TimeFormador:  in.TimeFormador,
		Posicao:       in.Posicao,
		Setor:         setor,
		Experiencia:   in.Experiencia,
		Idade:         in.Idade,
		Altura:        in.Altura,
		Peso:          in.Peso,
		Instagram:     in.Instagram,
		Instagram2:    in.Instagram2,
		Cidade:        in.Cidade,
		Nacionalidade: in.Nacionalidade,
	}
	if err := tx.Omit("Times").Create(player).Error; err != nil {
		return nil, storeError("criar jogador "+in.Nome, err)
	}

	stats, err := statsJSON(in.Estatisticas)
	if err != nil {
		return nil, err
	}
	link := &models.TeamPlayer{
		JogadorID:    player.ID,
		TimeID:       teamID,
		Temporada:    season,
		Numero:       in.Numero,
		Camisa:       in.Camisa,
		Estatisticas: stats,
	}
	if err := tx.Omit("Jogador", "Time").Create(link).Error; err != nil {
		return nil, storeError("criar vínculo do jogador "+in.Nome, err)
	}
	link.Jogador = player
	return link, nil
}
