// services/season_service.go - Season rollover: clones a season's teams and re-links its players
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"liga/models"

	"github.com/rs/zerolog/log"
)

// RosterStore is the transactional store the rollover runs against.
// FindTeam returns (nil, nil) when the team does not exist.
type RosterStore interface {
	InTransaction(ctx context.Context, fn func(tx RosterStore) error) error
	TeamsBySeason(ctx context.Context, season string) ([]models.Team, error)
	LinksBySeason(ctx context.Context, season string) ([]models.TeamPlayer, error)
	FindTeam(ctx context.Context, id uint) (*models.Team, error)
	CreateTeam(ctx context.Context, team *models.Team) error
	CreateLink(ctx context.Context, link *models.TeamPlayer) error
}

// TeamOverride replaces selected fields of a prior-season team in its clone.
// Empty fields keep the prior value.
type TeamOverride struct {
	TeamID     uint   `json:"teamId" yaml:"teamId" validate:"required"`
	Nome       string `json:"nome,omitempty" yaml:"nome"`
	Sigla      string `json:"sigla,omitempty" yaml:"sigla"`
	Cor        string `json:"cor,omitempty" yaml:"cor"`
	Logo       string `json:"logo,omitempty" yaml:"logo"`
	Capacete   string `json:"capacete,omitempty" yaml:"capacete"`
	Presidente string `json:"presidente,omitempty" yaml:"presidente"`
	HeadCoach  string `json:"head_coach,omitempty" yaml:"head_coach"`
	CoordOfen  string `json:"coord_ofen,omitempty" yaml:"coord_ofen"`
	CoordDefen string `json:"coord_defen,omitempty" yaml:"coord_defen"`
}

// Transfer moves a player to another team for the new season.
type Transfer struct {
	JogadorID  uint   `json:"jogadorId" yaml:"jogadorId" validate:"required"`
	NovoTimeID uint   `json:"novoTimeId" yaml:"novoTimeId" validate:"required"`
	NovoNumero *int   `json:"novoNumero,omitempty" yaml:"novoNumero" validate:"omitempty,min=0,max=99"`
	NovaCamisa string `json:"novaCamisa,omitempty" yaml:"novaCamisa"`
}

type RolloverRequest struct {
	TimeChanges    []TeamOverride `json:"timeChanges" yaml:"timeChanges" validate:"dive"`
	Transferencias []Transfer     `json:"transferencias" yaml:"transferencias" validate:"dive"`
}

type TransferRecord struct {
	JogadorID  uint   `json:"jogadorId"`
	Jogador    string `json:"jogador"`
	TimeAntigo uint   `json:"timeAntigo"`
	TimeNovo   uint   `json:"timeNovo"`
}

type RolloverSummary struct {
	Temporada         string           `json:"temporada"`
	TemporadaAnterior string           `json:"temporadaAnterior"`
	Times             int              `json:"times"`
	Jogadores         int              `json:"jogadores"`
	Vinculos          int              `json:"vinculos"`
	Descartados       int              `json:"descartados"`
	Transferencias    []TransferRecord `json:"transferencias"`
}

type SeasonService struct {
	store RosterStore
}

func NewSeasonService(store RosterStore) *SeasonService {
	return &SeasonService{store: store}
}

// ParseSeason validates a season year and returns it with the prior year.
func ParseSeason(year string) (target, prior string, err error) {
	n, convErr := strconv.Atoi(strings.TrimSpace(year))
	if convErr != nil || n <= 0 {
		return "", "", &ValidationError{Field: "ano", Message: fmt.Sprintf("ano inválido: %q", year)}
	}
	return strconv.Itoa(n), strconv.Itoa(n - 1), nil
}

// StartSeason clones every team of the prior season into targetYear and
// re-links the prior season's players. Everything runs in one transaction,
// so a failure leaves no partial season behind.
func (s *SeasonService) StartSeason(ctx context.Context, targetYear string, req RolloverRequest) (*RolloverSummary, error) {
	target, prior, err := ParseSeason(targetYear)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	overrides := make(map[uint]TeamOverride, len(req.TimeChanges))
	for _, o := range req.TimeChanges {
		overrides[o.TeamID] = o
	}
	transfers := make(map[uint]Transfer, len(req.Transferencias))
	for i, t := range req.Transferencias {
		if _, dup := transfers[t.JogadorID]; dup {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("transferencias[%d].jogadorId", i),
				Message: fmt.Sprintf("jogador %d transferido mais de uma vez", t.JogadorID),
			}
		}
		transfers[t.JogadorID] = t
	}

	logger := log.Ctx(ctx).With().Str("temporada", target).Logger()

	var summary *RolloverSummary
	err = s.store.InTransaction(ctx, func(tx RosterStore) error {
		r := &rollover{
			tx:      tx,
			target:  target,
			clones:  make(map[uint]*models.Team),
			created: make(map[uint]*models.Team),
			summary: &RolloverSummary{
				Temporada:         target,
				TemporadaAnterior: prior,
				Transferencias:    []TransferRecord{},
			},
		}

		priorTeams, err := tx.TeamsBySeason(ctx, prior)
		if err != nil {
			return storeError("listar times da temporada "+prior, err)
		}
		for i := range priorTeams {
			if err := r.cloneTeam(ctx, &priorTeams[i], overrides); err != nil {
				return err
			}
		}

		links, err := tx.LinksBySeason(ctx, prior)
		if err != nil {
			return storeError("listar vínculos da temporada "+prior, err)
		}
		r.summary.Jogadores = len(links)

		seen := make(map[uint]bool, len(links))
		for i := range links {
			link := &links[i]
			if seen[link.JogadorID] {
				logger.Warn().Uint("jogador_id", link.JogadorID).Msg("duplicate prior-season link dropped")
				r.summary.Descartados++
				continue
			}
			seen[link.JogadorID] = true

			if t, ok := transfers[link.JogadorID]; ok {
				if err := r.transfer(ctx, link, t); err != nil {
					return err
				}
				delete(transfers, link.JogadorID)
				continue
			}
			if err := r.carryOver(ctx, link); err != nil {
				return err
			}
		}

		summary = r.summary
		return nil
	})
	if err != nil {
		return nil, err
	}

	for id := range transfers {
		logger.Warn().Uint("jogador_id", id).Msg("transfer ignored: player has no link in the prior season")
	}
	logger.Info().
		Int("times", summary.Times).
		Int("jogadores", summary.Jogadores).
		Int("vinculos", summary.Vinculos).
		Int("descartados", summary.Descartados).
		Int("transferencias", len(summary.Transferencias)).
		Msg("season rollover completed")

	return summary, nil
}

// rollover holds the state of one StartSeason run.
type rollover struct {
	tx     RosterStore
	target string
	// clones maps a prior-season team id to its new-season copy.
	clones map[uint]*models.Team
	// created indexes the new-season teams by their own id.
	created map[uint]*models.Team
	summary *RolloverSummary
}

func (r *rollover) cloneTeam(ctx context.Context, old *models.Team, overrides map[uint]TeamOverride) error {
	clone := CloneTeam(old, overrides[old.ID], r.target)
	if err := r.tx.CreateTeam(ctx, clone); err != nil {
		return storeError("criar time "+old.Nome, err)
	}
	r.clones[old.ID] = clone
	r.created[clone.ID] = clone
	r.summary.Times++
	return nil
}

func (r *rollover) transfer(ctx context.Context, link *models.TeamPlayer, t Transfer) error {
	team, err := r.resolveTarget(ctx, t.NovoTimeID)
	if err != nil {
		return err
	}

	numero := link.Numero
	if t.NovoNumero != nil {
		numero = *t.NovoNumero
	}
	camisa := t.NovaCamisa
	if camisa == "" {
		camisa = DefaultJerseyImage(team.Sigla, numero)
	}

	if err := r.createLink(ctx, link.JogadorID, team.ID, numero, camisa); err != nil {
		return err
	}

	record := TransferRecord{
		JogadorID:  link.JogadorID,
		TimeAntigo: link.TimeID,
		TimeNovo:   team.ID,
	}
	if link.Jogador != nil {
		record.Jogador = link.Jogador.Nome
	}
	r.summary.Transferencias = append(r.summary.Transferencias, record)
	return nil
}

func (r *rollover) carryOver(ctx context.Context, link *models.TeamPlayer) error {
	clone, ok := r.clones[link.TimeID]
	if !ok {
		log.Ctx(ctx).Debug().
			Uint("jogador_id", link.JogadorID).
			Uint("time_id", link.TimeID).
			Msg("prior team has no clone, player dropped")
		r.summary.Descartados++
		return nil
	}
	return r.createLink(ctx, link.JogadorID, clone.ID, link.Numero, link.Camisa)
}

func (r *rollover) createLink(ctx context.Context, playerID, teamID uint, numero int, camisa string) error {
	link := &models.TeamPlayer{
		JogadorID:    playerID,
		TimeID:       teamID,
		Temporada:    r.target,
		Numero:       numero,
		Camisa:       camisa,
		Estatisticas: models.EmptyStats(),
	}
	if err := r.tx.CreateLink(ctx, link); err != nil {
		return storeError(fmt.Sprintf("criar vínculo do jogador %d", playerID), err)
	}
	r.summary.Vinculos++
	return nil
}

// resolveTarget finds the new-season team a transfer points at. Prior-season
// ids resolve to their clone.
func (r *rollover) resolveTarget(ctx context.Context, id uint) (*models.Team, error) {
	if team, ok := r.created[id]; ok {
		return team, nil
	}
	team, err := r.tx.FindTeam(ctx, id)
	if err != nil {
		return nil, storeError(fmt.Sprintf("buscar time %d", id), err)
	}
	if team != nil && team.Temporada == r.target {
		r.created[id] = team
		return team, nil
	}
	if clone, ok := r.clones[id]; ok {
		return clone, nil
	}
	return nil, &NotFoundError{Entity: "time da temporada " + r.target, ID: id}
}

// CloneTeam copies old into a new, unsaved team for season with the
// override's non-empty fields applied.
func CloneTeam(old *models.Team, o TeamOverride, season string) *models.Team {
	titulos := models.EmptyTitles()
	if len(old.Titulos) > 0 {
		titulos = append(titulos[:0:0], old.Titulos...)
	}
	return &models.Team{
		Nome:           pick(o.Nome, old.Nome),
		Sigla:          pick(o.Sigla, old.Sigla),
		Cor:            pick(o.Cor, old.Cor),
		Cidade:         old.Cidade,
		BandeiraEstado: old.BandeiraEstado,
		Fundacao:       old.Fundacao,
		Logo:           pick(o.Logo, old.Logo),
		Capacete:       pick(o.Capacete, old.Capacete),
		Instagram:      old.Instagram,
		Instagram2:     old.Instagram2,
		Estadio:        old.Estadio,
		Presidente:     pick(o.Presidente, old.Presidente),
		HeadCoach:      pick(o.HeadCoach, old.HeadCoach),
		InstagramCoach: old.InstagramCoach,
		CoordOfen:      pick(o.CoordOfen, old.CoordOfen),
		CoordDefen:     pick(o.CoordDefen, old.CoordDefen),
		Titulos:        titulos,
		Temporada:      season,
	}
}

// DefaultJerseyImage names the jersey image of a transferred player who
// was given no explicit image.
func DefaultJerseyImage(sigla string, numero int) string {
	if sigla == "" {
		sigla = "novo"
	}
	return fmt.Sprintf("camisa-%s-%d.png", strings.ToLower(sigla), numero)
}

func pick(override, current string) string {
	if override != "" {
		return override
	}
	return current
}
