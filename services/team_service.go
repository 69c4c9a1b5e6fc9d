// services/team_service.go - Team and roster catalog
package services

import (
	"context"
	"encoding/json"

	"liga/models"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TeamInput is the writable shape of a team, optionally with its roster.
type TeamInput struct {
	Nome           string        `json:"nome" yaml:"nome" validate:"required"`
	Sigla          string        `json:"sigla" yaml:"sigla" validate:"max=10"`
	Cor            string        `json:"cor" yaml:"cor"`
	Cidade         string        `json:"cidade" yaml:"cidade"`
	BandeiraEstado string        `json:"bandeira_estado" yaml:"bandeira_estado"`
	Fundacao       string        `json:"fundacao" yaml:"fundacao"`
	Logo           string        `json:"logo" yaml:"logo"`
	Capacete       string        `json:"capacete" yaml:"capacete"`
	Instagram      string        `json:"instagram" yaml:"instagram"`
	Instagram2     string        `json:"instagram2" yaml:"instagram2"`
	Estadio        string        `json:"estadio" yaml:"estadio"`
	Presidente     string        `json:"presidente" yaml:"presidente"`
	HeadCoach      string        `json:"head_coach" yaml:"head_coach"`
	InstagramCoach string        `json:"instagram_coach" yaml:"instagram_coach"`
	CoordOfen      string        `json:"coord_ofen" yaml:"coord_ofen"`
	CoordDefen     string        `json:"coord_defen" yaml:"coord_defen"`
	Titulos        []any         `json:"titulos" yaml:"titulos"`
	Temporada      string        `json:"temporada" yaml:"temporada" validate:"omitempty,numeric"`
	Jogadores      []PlayerInput `json:"jogadores" yaml:"jogadores" validate:"dive"`
}

type TeamService struct {
	db            *gorm.DB
	defaultSeason string
}

func NewTeamService(db *gorm.DB, defaultSeason string) *TeamService {
	return &TeamService{db: db, defaultSeason: defaultSeason}
}

// ================== QUERIES ==================

// ListTeams returns the teams of season (all seasons when empty). With
// players set, each team carries its links and their players.
func (s *TeamService) ListTeams(ctx context.Context, season string, withPlayers bool) ([]models.Team, error) {
	var teams []models.Team
	query := s.db.WithContext(ctx).Order("temporada DESC, nome ASC")
	if season != "" {
		query = query.Where("temporada = ?", season)
	}
	if withPlayers {
		query = query.Preload("Jogadores", func(db *gorm.DB) *gorm.DB {
			return db.Order("numero ASC")
		}).Preload("Jogadores.Jogador")
	}
	if err := query.Find(&teams).Error; err != nil {
		return nil, storeError("listar times", err)
	}
	return teams, nil
}

func (s *TeamService) GetTeam(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team
	err := s.db.WithContext(ctx).
		Preload("Jogadores", func(db *gorm.DB) *gorm.DB {
			return db.Order("numero ASC")
		}).
		Preload("Jogadores.Jogador").
		First(&team, id).Error
	if err != nil {
		return nil, lookupError("time", id, err)
	}
	return &team, nil
}

// ================== WRITES ==================

// CreateTeam creates a team and its roster for the team's season.
func (s *TeamService) CreateTeam(ctx context.Context, in TeamInput) (*models.Team, error) {
	teams, err := s.CreateTeams(ctx, []TeamInput{in})
	if err != nil {
		return nil, err
	}
	return &teams[0], nil
}

// CreateTeams creates every team and roster in one transaction.
func (s *TeamService) CreateTeams(ctx context.Context, inputs []TeamInput) ([]models.Team, error) {
	for _, in := range inputs {
		if err := validateStruct(in); err != nil {
			return nil, err
		}
	}

	created := make([]models.Team, 0, len(inputs))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, in := range inputs {
			team, err := s.createTeam(tx, in)
			if err != nil {
				return err
			}
			created = append(created, *team)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Int("times", len(created)).Msg("teams created")
	return created, nil
}

func (s *TeamService) createTeam(tx *gorm.DB, in TeamInput) (*models.Team, error) {
	team, err := in.toModel(s.defaultSeason)
	if err != nil {
		return nil, err
	}
	if err := tx.Omit("Jogadores").Create(team).Error; err != nil {
		return nil, storeError("criar time "+in.Nome, err)
	}

	for _, p := range in.Jogadores {
		link, err := createPlayerWithLink(tx, p, team.ID, team.Temporada)
		if err != nil {
			return nil, err
		}
		team.Jogadores = append(team.Jogadores, *link)
	}
	return team, nil
}

// UpdateTeam changes the fields sent in in. Empty fields and a missing
// titulos list keep their stored values; players, id and season are left alone.
func (s *TeamService) UpdateTeam(ctx context.Context, id uint, in TeamInput) (*models.Team, error) {
	if err := validateStructExcept(in, "Nome", "Jogadores"); err != nil {
		return nil, err
	}

	var team models.Team
	if err := s.db.WithContext(ctx).First(&team, id).Error; err != nil {
		return nil, lookupError("time", id, err)
	}

	update, err := in.toModel(team.Temporada)
	if err != nil {
		return nil, err
	}
	update.Temporada = ""
	if in.Titulos == nil {
		update.Titulos = nil
	}

	err = s.db.WithContext(ctx).Model(&team).
		Omit("id", "temporada", "created_at", "Jogadores").
		Updates(update).Error
	if err != nil {
		return nil, storeError("atualizar time", err)
	}
	return s.GetTeam(ctx, id)
}

// DeleteTeam removes the team and every link pointing at it.
func (s *TeamService) DeleteTeam(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("time_id = ?", id).Delete(&models.TeamPlayer{}).Error; err != nil {
			return storeError("remover vínculos do time", err)
		}
		res := tx.Delete(&models.Team{}, id)
		if res.Error != nil {
			return storeError("remover time", res.Error)
		}
		if res.RowsAffected == 0 {
			return &NotFoundError{Entity: "time", ID: id}
		}
		return nil
	})
}

func (in TeamInput) toModel(defaultSeason string) (*models.Team, error) {
	titulos := models.EmptyTitles()
	if len(in.Titulos) > 0 {
		b, err := json.Marshal(in.Titulos)
		if err != nil {
			return nil, &ValidationError{Field: "titulos", Message: err.Error()}
		}
		titulos = datatypes.JSON(b)
	}
	season := in.Temporada
	if season == "" {
		season = defaultSeason
	}
	return &models.Team{
		Nome:           in.Nome,
		Sigla:          in.Sigla,
		Cor:            in.Cor,
		Cidade:         in.Cidade,
		BandeiraEstado: in.BandeiraEstado,
		Fundacao:       in.Fundacao,
		Logo:           in.Logo,
		Capacete:       in.Capacete,
		Instagram:      in.Instagram,
		Instagram2:     in.Instagram2,
		Estadio:        in.Estadio,
		Presidente:     in.Presidente,
		HeadCoach:      in.HeadCoach,
		InstagramCoach: in.InstagramCoach,
		CoordOfen:      in.CoordOfen,
		CoordDefen:     in.CoordDefen,
		Titulos:        titulos,
		Temporada:      season,
	}, nil
}
