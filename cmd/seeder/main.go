package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-leaderboard/internal/club"
	"github.com/mauv0809/court-leaderboard/internal/config"
	"github.com/mauv0809/court-leaderboard/internal/database"
	"github.com/spf13/cobra"
)

var (
	courtSpecs  []string
	demoPlayers bool
)

var demoPlayerNames = []string{"Ana Ruiz", "Bo Larsen", "Chloe Martin", "Dev Patel", "Eli Novak", "Freya Holm"}

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Seed courts and demo players into the leaderboard database",
	Long: `Applies migrations and upserts courts into the configured database.
Without --court one court per sport is created. Running it twice is safe.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringArrayVar(&courtSpecs, "court", nil, `Court to upsert as "Name:sport" (repeatable)`)
	rootCmd.Flags().BoolVar(&demoPlayers, "demo-players", false, "Create demo players when the player table is empty")
}

func main() {
	log.SetFormatter(log.JSONFormatter)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	log.Info("Starting database seeder...")
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	config.ConfigureLogger(cfg)

	courts, err := parseCourts(courtSpecs)
	if err != nil {
		return err
	}

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer teardown()

	store := club.New(db)
	if err := store.UpsertCourts(ctx, courts); err != nil {
		return fmt.Errorf("failed to upsert courts: %w", err)
	}
	log.Info("Ensured courts exist", "count", len(courts))

	if demoPlayers {
		if err := seedPlayers(ctx, store); err != nil {
			return err
		}
	}
	log.Info("Seeding complete")
	return nil
}

// parseCourts turns "Name:sport" specs into courts. No specs yields one
// default court per sport.
func parseCourts(specs []string) ([]club.Court, error) {
	if len(specs) == 0 {
		courts := make([]club.Court, 0, len(club.Sports))
		for _, sport := range club.Sports {
			name := strings.ToUpper(string(sport[:1])) + string(sport[1:]) + " Court 1"
			courts = append(courts, club.Court{Name: name, Type: sport})
		}
		return courts, nil
	}

	courts := make([]club.Court, 0, len(specs))
	for _, spec := range specs {
		name, rawSport, ok := strings.Cut(spec, ":")
		name = strings.TrimSpace(name)
		sport := club.Sport(strings.ToLower(strings.TrimSpace(rawSport)))
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid court %q, expected Name:sport", spec)
		}
		if !sport.Valid() {
			return nil, fmt.Errorf("invalid sport %q for court %q", rawSport, name)
		}
		courts = append(courts, club.Court{Name: name, Type: sport})
	}
	return courts, nil
}

func seedPlayers(ctx context.Context, store club.ClubStore) error {
	existing, err := store.ListPlayers(ctx, club.PlayerQuery{Page: club.Page{Number: 1, Size: 1}})
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}
	if len(existing) > 0 {
		log.Info("Players already present, skipping demo players")
		return nil
	}
	for _, name := range demoPlayerNames {
		if _, err := store.CreatePlayer(ctx, club.NewPlayer{Name: name}); err != nil {
			return fmt.Errorf("failed to insert demo player %s: %w", name, err)
		}
	}
	log.Info("Inserted demo players", "count", len(demoPlayerNames))
	return nil
}
