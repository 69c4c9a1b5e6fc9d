package database

import (
	"context"
	"testing"

	"liga/models"
	"liga/services"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RosterStoreSuite struct {
	suite.Suite
	db      *gorm.DB
	teams   *services.TeamService
	seasons *services.SeasonService
	ctx     context.Context
}

func TestRosterStoreSuite(t *testing.T) {
	suite.Run(t, new(RosterStoreSuite))
}

func (s *RosterStoreSuite) SetupTest() {
	db, err := Open("sqlite://:memory:", false)
	s.Require().NoError(err)
	s.Require().NoError(RunMigrations(db))
	s.db = db
	s.teams = services.NewTeamService(db, "2023")
	s.seasons = services.NewSeasonService(NewRosterStore(db))
	s.ctx = context.Background()
}

func (s *RosterStoreSuite) TearDownTest() {
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (s *RosterStoreSuite) count(model any, season string) int64 {
	var n int64
	s.Require().NoError(s.db.Model(model).Where("temporada = ?", season).Count(&n).Error)
	return n
}

func (s *RosterStoreSuite) TestRolloverPersistsNewSeason() {
	created, err := s.teams.CreateTeams(s.ctx, []services.TeamInput{
		{Nome: "Galo FA", Sigla: "GFA", Jogadores: []services.PlayerInput{{Nome: "João", Numero: 12}}},
		{Nome: "Timbó Rex", Sigla: "TRX", Jogadores: []services.PlayerInput{{Nome: "Pedro", Numero: 7}}},
	})
	s.Require().NoError(err)

	summary, err := s.seasons.StartSeason(s.ctx, "2024", services.RolloverRequest{
		Transferencias: []services.Transfer{{JogadorID: created[0].Jogadores[0].JogadorID, NovoTimeID: created[1].ID}},
	})
	s.Require().NoError(err)
	s.Equal(2, summary.Times)
	s.Equal(2, summary.Vinculos)

	s.EqualValues(2, s.count(&models.Team{}, "2024"))
	s.EqualValues(2, s.count(&models.TeamPlayer{}, "2024"))
	s.EqualValues(2, s.count(&models.TeamPlayer{}, "2023"), "prior links untouched")

	var players int64
	s.db.Model(&models.Player{}).Count(&players)
	s.EqualValues(2, players, "players are linked, not copied")

	var link models.TeamPlayer
	s.Require().NoError(s.db.Preload("Time").
		Where("temporada = ? AND jogador_id = ?", "2024", created[0].Jogadores[0].JogadorID).
		First(&link).Error)
	s.Equal("Timbó Rex", link.Time.Nome)
	s.Equal("2024", link.Time.Temporada)
	s.Equal("camisa-trx-12.png", link.Camisa)
}

func (s *RosterStoreSuite) TestFailedRolloverRollsBack() {
	_, err := s.teams.CreateTeams(s.ctx, []services.TeamInput{
		{Nome: "Galo FA", Jogadores: []services.PlayerInput{{Nome: "João"}}},
	})
	s.Require().NoError(err)

	_, err = s.seasons.StartSeason(s.ctx, "2024", services.RolloverRequest{
		Transferencias: []services.Transfer{{JogadorID: 1, NovoTimeID: 404}},
	})
	s.True(services.IsNotFound(err))

	s.Zero(s.count(&models.Team{}, "2024"))
	s.Zero(s.count(&models.TeamPlayer{}, "2024"))
}

func (s *RosterStoreSuite) TestFindTeamMissing() {
	team, err := NewRosterStore(s.db).FindTeam(s.ctx, 77)
	s.NoError(err)
	s.Nil(team)
}
