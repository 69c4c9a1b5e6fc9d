package main

import (
	"fmt"
	"os"

	"liga/config"
	"liga/database"
	"liga/services"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

var (
	cfg *config.Config
	db  *gorm.DB
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ligactl",
		Short: "Administrative tasks for the Liga API",
		Long: `ligactl runs the Liga API's administrative tasks against the configured
database: migrations, seed import, season rollover and admin accounts.

Configuration is read from .env and the environment, like the server.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newCheckSeedCmd())
	rootCmd.AddCommand(newStartSeasonCmd())
	rootCmd.AddCommand(newCreateAdminCmd())
	rootCmd.AddCommand(newPruneCmd())
	return rootCmd
}

// connect loads the configuration and opens the database with migrations applied.
func connect(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(); err != nil {
		return err
	}
	if err = database.InitDB(cfg.DatabaseURL, false); err != nil {
		return err
	}
	db = database.GetDB()
	return nil
}

func disconnect(cmd *cobra.Command, args []string) error {
	return database.CloseDB()
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "migrate",
		Short:             "Create or update the database schema",
		PersistentPreRunE: connect,
		PostRunE:          disconnect,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "✓ migrations applied")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:               "seed",
		Short:             "Import teams and rosters from a YAML seed file",
		PersistentPreRunE: connect,
		PostRunE:          disconnect,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = cfg.SeedFile
			}
			seed := services.NewSeedService(services.NewTeamService(db, cfg.CurrentSeason))
			teams, err := seed.ImportFile(cmd.Context(), file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %d times importados de %s\n", len(teams), file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed file (default: SEED_FILE)")
	return cmd
}

func newCheckSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-seed FILE...",
		Short: "Validate seed files without touching the database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
					continue
				}
				seed, err := services.ParseSeed(f)
				f.Close()
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d times)\n", path, len(seed.Times))
			}
			if failed > 0 {
				return fmt.Errorf("%d seed file(s) invalid", failed)
			}
			return nil
		},
	}
}

func newStartSeasonCmd() *cobra.Command {
	var changesFile string
	cmd := &cobra.Command{
		Use:               "start-season ANO",
		Short:             "Clone the previous season's teams and rosters into ANO",
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: connect,
		PostRunE:          disconnect,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req services.RolloverRequest
			if changesFile != "" {
				data, err := os.ReadFile(changesFile)
				if err != nil {
					return fmt.Errorf("failed to read changes file: %w", err)
				}
				if err := yaml.Unmarshal(data, &req); err != nil {
					return fmt.Errorf("failed to parse changes file: %w", err)
				}
			}

			seasons := services.NewSeasonService(database.NewRosterStore(db))
			summary, err := seasons.StartSeason(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ temporada %s iniciada a partir de %s\n", summary.Temporada, summary.TemporadaAnterior)
			fmt.Fprintf(out, "  times: %d\n  jogadores: %d\n  vínculos: %d\n  descartados: %d\n",
				summary.Times, summary.Jogadores, summary.Vinculos, summary.Descartados)
			for _, t := range summary.Transferencias {
				fmt.Fprintf(out, "  transferência: %s (%d) %d -> %d\n", t.Jogador, t.JogadorID, t.TimeAntigo, t.TimeNovo)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&changesFile, "changes", "c", "", "YAML file with timeChanges and transferencias")
	return cmd
}

func newCreateAdminCmd() *cobra.Command {
	var in services.RegisterInput
	cmd := &cobra.Command{
		Use:               "create-admin",
		Short:             "Create an administrator account",
		PersistentPreRunE: connect,
		PostRunE:          disconnect,
		RunE: func(cmd *cobra.Command, args []string) error {
			auth := services.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, clockwork.NewRealClock())
			user, err := auth.CreateAdmin(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ administrador %s criado (id %d)\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Nome, "nome", "", "name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email")
	cmd.Flags().StringVar(&in.Senha, "senha", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("senha")
	return cmd
}

func newPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "prune",
		Short:             "Delete players that no longer belong to any team",
		PersistentPreRunE: connect,
		PostRunE:          disconnect,
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := services.NewCleanupService(db).PruneOrphanPlayers(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %d jogadores removidos\n", removed)
			return nil
		},
	}
}
