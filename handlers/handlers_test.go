package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"liga/database"
	"liga/middleware"
	"liga/models"
	"liga/services"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type APISuite struct {
	suite.Suite
	db         *gorm.DB
	app        *fiber.App
	auth       *services.AuthService
	adminToken string
	seedPath   string
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	db, err := database.Open("sqlite://:memory:", false)
	s.Require().NoError(err)
	s.Require().NoError(database.RunMigrations(db))
	s.db = db

	s.seedPath = filepath.Join(s.T().TempDir(), "times.yaml")
	teams := services.NewTeamService(db, "2023")
	s.auth = services.NewAuthService(db, "handlers-test-secret-0123456789abcdef", time.Hour, clockwork.NewRealClock())
	Init(Deps{
		Teams:    teams,
		Players:  services.NewPlayerService(db, "2023"),
		Articles: services.NewArticleService(db),
		Seasons:  services.NewSeasonService(database.NewRosterStore(db)),
		Auth:     s.auth,
		Seed:     services.NewSeedService(teams),
		SeedFile: s.seedPath,
	})

	s.app = fiber.New(fiber.Config{ErrorHandler: ErrorHandler(false)})
	SetupRoutes(s.app, RouteConfig{Auth: middleware.NewAuth(s.auth), Version: "test"})

	admin, err := s.auth.CreateAdmin(context.Background(), services.RegisterInput{
		Nome: "Admin", Email: "admin@liga.com", Senha: "segredo1",
	})
	s.Require().NoError(err)
	s.adminToken, err = s.auth.IssueToken(admin)
	s.Require().NoError(err)
}

func (s *APISuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (s *APISuite) do(method, path, token string, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, data
}

func (s *APISuite) decode(data []byte, v any) {
	s.Require().NoError(json.Unmarshal(data, v), string(data))
}

func (s *APISuite) tokenFor(plano models.Plan) string {
	user, err := s.auth.Register(context.Background(), services.RegisterInput{
		Nome: "Ana", Email: string(plano) + "@liga.com", Senha: "segredo1", Plano: plano,
	})
	s.Require().NoError(err)
	token, err := s.auth.IssueToken(user)
	s.Require().NoError(err)
	return token
}

func (s *APISuite) createTeam(in services.TeamInput) models.Team {
	status, body := s.do(http.MethodPost, "/api/time", s.adminToken, in)
	s.Require().Equal(fiber.StatusCreated, status, string(body))
	var resp struct {
		Team models.Team `json:"team"`
	}
	s.decode(body, &resp)
	return resp.Team
}

// Health

func (s *APISuite) TestHealth() {
	status, body := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(fiber.StatusOK, status)
	s.Contains(string(body), `"version":"test"`)
}

// Auth

func (s *APISuite) TestRegisterAndLogin() {
	status, body := s.do(http.MethodPost, "/api/cadastro", "", map[string]string{
		"nome": "Bia", "email": "bia@liga.com", "senha": "segredo1", "plano": "PADRAO",
	})
	s.Require().Equal(fiber.StatusCreated, status, string(body))
	s.NotContains(string(body), "segredo1")

	status, _ = s.do(http.MethodPost, "/api/cadastro", "", map[string]string{
		"nome": "Bia", "email": "bia@liga.com", "senha": "segredo1",
	})
	s.Equal(fiber.StatusBadRequest, status)

	status, body = s.do(http.MethodPost, "/api/login", "", map[string]string{"email": "bia@liga.com", "senha": "segredo1"})
	s.Require().Equal(fiber.StatusOK, status)
	var login struct {
		Token string `json:"token"`
	}
	s.decode(body, &login)
	s.NotEmpty(login.Token)

	status, body = s.do(http.MethodGet, "/api/test", login.Token, nil)
	s.Equal(fiber.StatusOK, status)
	s.Contains(string(body), "Bem-vindo, PADRAO!")
}

func (s *APISuite) TestLoginErrors() {
	status, _ := s.do(http.MethodPost, "/api/login", "", map[string]string{"email": "x@liga.com", "senha": "segredo1"})
	s.Equal(fiber.StatusNotFound, status)

	status, _ = s.do(http.MethodPost, "/api/login", "", map[string]string{"email": "admin@liga.com", "senha": "errada"})
	s.Equal(fiber.StatusUnauthorized, status)
}

func (s *APISuite) TestBadTokenIsRejected() {
	status, _ := s.do(http.MethodGet, "/api/times", "not-a-token", nil)
	s.Equal(fiber.StatusUnauthorized, status)

	status, _ = s.do(http.MethodGet, "/api/test", "", nil)
	s.Equal(fiber.StatusUnauthorized, status)
}

// Plan gates

func (s *APISuite) TestPlanGates() {
	basico := s.tokenFor(models.PlanBasico)
	padrao := s.tokenFor(models.PlanPadrao)
	premium := s.tokenFor(models.PlanPremium)

	cases := []struct {
		path   string
		token  string
		status int
	}{
		{"/api/times-basico", "", fiber.StatusUnauthorized},
		{"/api/times-basico", basico, fiber.StatusOK},
		{"/api/times-basico", padrao, fiber.StatusForbidden},
		{"/api/times-padrao", padrao, fiber.StatusOK},
		{"/api/times-padrao", basico, fiber.StatusForbidden},
		{"/api/times-premium", padrao, fiber.StatusForbidden},
		{"/api/times-premium", premium, fiber.StatusOK},
		{"/api/times-basico", premium, fiber.StatusOK},
		{"/api/times-padrao", premium, fiber.StatusOK},
	}
	for _, tc := range cases {
		status, _ := s.do(http.MethodGet, tc.path, tc.token, nil)
		s.Equal(tc.status, status, tc.path)
	}
}

// Teams and players

func (s *APISuite) TestWritesRequireAdmin() {
	in := services.TeamInput{Nome: "Galo FA"}

	status, _ := s.do(http.MethodPost, "/api/time", "", in)
	s.Equal(fiber.StatusUnauthorized, status)

	status, _ = s.do(http.MethodPost, "/api/time", s.tokenFor(models.PlanPremium), in)
	s.Equal(fiber.StatusForbidden, status)

	status, _ = s.do(http.MethodPost, "/api/iniciar-temporada/2024", "", nil)
	s.Equal(fiber.StatusUnauthorized, status)
}

func (s *APISuite) TestTeamCRUD() {
	team := s.createTeam(services.TeamInput{
		Nome:      "Galo FA",
		Sigla:     "GFA",
		Jogadores: []services.PlayerInput{{Nome: "João", Numero: 12}},
	})
	s.Equal("2023", team.Temporada)

	status, body := s.do(http.MethodGet, "/api/times?temporada=2023", "", nil)
	s.Require().Equal(fiber.StatusOK, status)
	var teams []models.Team
	s.decode(body, &teams)
	s.Require().Len(teams, 1)
	s.Require().Len(teams[0].Jogadores, 1)
	s.Equal("João", teams[0].Jogadores[0].Jogador.Nome)

	status, body = s.do(http.MethodPut, "/api/time/"+itoa(team.ID), s.adminToken, map[string]string{
		"nome": "Galo", "head_coach": "Zé",
	})
	s.Require().Equal(fiber.StatusOK, status, string(body))
	var updated models.Team
	s.decode(body, &updated)
	s.Equal("Galo", updated.Nome)
	s.Equal("Zé", updated.HeadCoach)
	s.Equal("GFA", updated.Sigla, "fields not sent are kept")

	status, _ = s.do(http.MethodDelete, "/api/time/"+itoa(team.ID), s.adminToken, nil)
	s.Equal(fiber.StatusNoContent, status)

	status, _ = s.do(http.MethodGet, "/api/times/"+itoa(team.ID), "", nil)
	s.Equal(fiber.StatusNotFound, status)
}

func (s *APISuite) TestTeamValidationAndBadIDs() {
	status, body := s.do(http.MethodPost, "/api/time", s.adminToken, services.TeamInput{Sigla: "X"})
	s.Equal(fiber.StatusBadRequest, status)
	s.Contains(string(body), `"success":false`)

	status, _ = s.do(http.MethodGet, "/api/times/abc", "", nil)
	s.Equal(fiber.StatusBadRequest, status)

	status, _ = s.do(http.MethodPost, "/api/times", s.adminToken, []services.TeamInput{})
	s.Equal(fiber.StatusBadRequest, status)
}

func (s *APISuite) TestCreateAndUpdatePlayer() {
	team := s.createTeam(services.TeamInput{Nome: "Galo FA"})

	status, body := s.do(http.MethodPost, "/api/jogador", s.adminToken, services.PlayerInput{Nome: "Pedro", TimeID: team.ID, Numero: 9})
	s.Require().Equal(fiber.StatusCreated, status, string(body))
	var created struct {
		Jogador models.TeamPlayer `json:"jogador"`
	}
	s.decode(body, &created)

	status, body = s.do(http.MethodPut, "/api/jogador/"+itoa(created.Jogador.JogadorID), s.adminToken, map[string]any{
		"estatisticas": map[string]any{"corrida": map[string]any{"jardas": 40, "td": ""}},
	})
	s.Require().Equal(fiber.StatusOK, status, string(body))
	var player models.Player
	s.decode(body, &player)
	s.Require().Len(player.Times, 1)
	s.JSONEq(`{"corrida":{"jardas":40}}`, string(player.Times[0].Estatisticas))

	status, _ = s.do(http.MethodPost, "/api/jogador", s.adminToken, services.PlayerInput{Nome: "X", TimeID: 999})
	s.Equal(fiber.StatusNotFound, status)
}

func (s *APISuite) TestImportData() {
	doc := "temporada: \"2023\"\ntimes:\n  - nome: Galo FA\n    sigla: GFA\n    jogadores:\n      - nome: João\n"
	s.Require().NoError(os.WriteFile(s.seedPath, []byte(doc), 0o600))

	status, body := s.do(http.MethodPost, "/api/importar-dados", s.adminToken, nil)
	s.Require().Equal(fiber.StatusCreated, status, string(body))
	s.Contains(string(body), "Dados importados com sucesso!")
}

// Season rollover

func (s *APISuite) TestStartSeason() {
	galo := s.createTeam(services.TeamInput{Nome: "Galo FA", Sigla: "GFA", Jogadores: []services.PlayerInput{{Nome: "João", Numero: 12}}})
	rex := s.createTeam(services.TeamInput{Nome: "Timbó Rex", Sigla: "TRX", Jogadores: []services.PlayerInput{{Nome: "Pedro", Numero: 7}}})
	joao := galo.Jogadores[0].JogadorID

	status, body := s.do(http.MethodPost, "/api/iniciar-temporada/2024", s.adminToken, services.RolloverRequest{
		TimeChanges:    []services.TeamOverride{{TeamID: rex.ID, Nome: "Timbó Rex FA"}},
		Transferencias: []services.Transfer{{JogadorID: joao, NovoTimeID: rex.ID}},
	})
	s.Require().Equal(fiber.StatusOK, status, string(body))

	var resp struct {
		Message        string                    `json:"message"`
		Temporada      string                    `json:"temporada"`
		Times          int                       `json:"times"`
		Vinculos       int                       `json:"vinculos"`
		Transferencias []services.TransferRecord `json:"transferencias"`
	}
	s.decode(body, &resp)
	s.Equal("2024", resp.Temporada)
	s.Equal(2, resp.Times)
	s.Equal(2, resp.Vinculos)
	s.Require().Len(resp.Transferencias, 1)

	status, body = s.do(http.MethodGet, "/api/times?temporada=2024", "", nil)
	s.Require().Equal(fiber.StatusOK, status)
	var teams []models.Team
	s.decode(body, &teams)
	s.Require().Len(teams, 2)
	s.Equal("Galo FA", teams[0].Nome)
	s.Empty(teams[0].Jogadores)
	s.Equal("Timbó Rex FA", teams[1].Nome)
	s.Require().Len(teams[1].Jogadores, 2)
	s.Equal("camisa-trx-12.png", teams[1].Jogadores[1].Camisa)
}

func (s *APISuite) TestStartSeasonWithoutBody() {
	s.createTeam(services.TeamInput{Nome: "Galo FA"})

	status, body := s.do(http.MethodPost, "/api/iniciar-temporada/2024", s.adminToken, nil)
	s.Require().Equal(fiber.StatusOK, status, string(body))
	s.Contains(string(body), `"times":1`)
}

func (s *APISuite) TestStartSeasonFailuresAreGeneric() {
	s.createTeam(services.TeamInput{Nome: "Galo FA", Jogadores: []services.PlayerInput{{Nome: "João"}}})

	status, body := s.do(http.MethodPost, "/api/iniciar-temporada/2024", s.adminToken, services.RolloverRequest{
		Transferencias: []services.Transfer{{JogadorID: 1, NovoTimeID: 999}},
	})
	s.Equal(fiber.StatusInternalServerError, status)
	s.Contains(string(body), "Erro ao iniciar nova temporada")

	status, body = s.do(http.MethodGet, "/api/times?temporada=2024", "", nil)
	s.Require().Equal(fiber.StatusOK, status)
	var teams []models.Team
	s.decode(body, &teams)
	s.Empty(teams, "failed rollover leaves no teams behind")

	status, _ = s.do(http.MethodPost, "/api/iniciar-temporada/abc", s.adminToken, nil)
	s.Equal(fiber.StatusInternalServerError, status)
}

// Articles

func (s *APISuite) TestArticles() {
	status, body := s.do(http.MethodPost, "/api/materias", s.adminToken, services.ArticleInput{
		Titulo: "Abertura", Texto: "A temporada começou", Autor: "Redação",
	})
	s.Require().Equal(fiber.StatusCreated, status, string(body))
	var article models.Article
	s.decode(body, &article)

	status, body = s.do(http.MethodGet, "/api/materias", "", nil)
	s.Require().Equal(fiber.StatusOK, status)
	s.Contains(string(body), "Abertura")

	status, _ = s.do(http.MethodDelete, "/api/materias/"+itoa(article.ID), s.adminToken, nil)
	s.Equal(fiber.StatusNoContent, status)

	status, _ = s.do(http.MethodGet, "/api/materias/"+itoa(article.ID), "", nil)
	s.Equal(fiber.StatusNotFound, status)
}

func itoa(id uint) string {
	return fmt.Sprint(id)
}
