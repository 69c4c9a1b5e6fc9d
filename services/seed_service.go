// services/seed_service.go - Imports teams and rosters from a YAML seed file
package services

import (
	"context"
	"fmt"
	"io"
	"os"

	"liga/models"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// SeedFile is the document layout of the seed file.
type SeedFile struct {
	Temporada string      `yaml:"temporada"`
	Times     []TeamInput `yaml:"times"`
}

type SeedService struct {
	teams *TeamService
}

func NewSeedService(teams *TeamService) *SeedService {
	return &SeedService{teams: teams}
}

// ParseSeed decodes a seed document. Teams without a season inherit the
// document's season.
func ParseSeed(r io.Reader) (*SeedFile, error) {
	var seed SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return nil, &ValidationError{Field: "seed", Message: err.Error()}
	}
	if len(seed.Times) == 0 {
		return nil, &ValidationError{Field: "times", Message: "nenhum time no arquivo"}
	}
	for i := range seed.Times {
		if seed.Times[i].Temporada == "" {
			seed.Times[i].Temporada = seed.Temporada
		}
		if err := validateStruct(seed.Times[i]); err != nil {
			return nil, fmt.Errorf("times[%d]: %w", i, err)
		}
	}
	return &seed, nil
}

// ImportFile loads path and creates every team in one transaction.
func (s *SeedService) ImportFile(ctx context.Context, path string) ([]models.Team, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return s.Import(ctx, f)
}

func (s *SeedService) Import(ctx context.Context, r io.Reader) ([]models.Team, error) {
	seed, err := ParseSeed(r)
	if err != nil {
		return nil, err
	}
	teams, err := s.teams.CreateTeams(ctx, seed.Times)
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Int("times", len(teams)).Msg("✅ seed imported")
	return teams, nil
}
