package cmd

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"cricketmgr.dev/core/internal/config"
	"cricketmgr.dev/core/internal/core"
	"cricketmgr.dev/core/internal/db"
	"cricketmgr.dev/core/internal/echo"
	"cricketmgr.dev/core/internal/repository"
	"cricketmgr.dev/core/internal/service"
)

// CareerCmd creates the career command group
func CareerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "career",
		Short: "Career management",
		Long:  "Create and inspect franchise-manager careers from the command line.",
	}
	cmd.AddCommand(CareerCreateCmd())
	cmd.AddCommand(CareerListCmd())
	return cmd
}

// CareerCreateCmd creates the career create command
func CareerCreateCmd() *cobra.Command {
	var userID string
	var name string
	var userTeamIdx int
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new career",
		Long:  "Generates 8 franchises and a 150+ player pool, then starts the career at season 1.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return createCareer(cmd, userID, name, userTeamIdx)
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "Owning user ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "Career name (required)")
	cmd.Flags().IntVar(&userTeamIdx, "team", -1, "Franchise index to control (0-7, random if omitted)")
	return cmd
}

// CareerListCmd creates the career list command
func CareerListCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List careers for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCareers(cmd, userID)
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "Owning user ID (required)")
	return cmd
}

func careerServiceForCmd(cmd *cobra.Command) (*service.Service, *sql.DB, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	database, err := db.Connect(cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	careers := repository.NewCareerRepository(database.DB)
	players := repository.NewPlayerRepository(database.DB)
	teams := repository.NewTeamRepository(database.DB)
	seasons := repository.NewSeasonRepository(database.DB)
	fixtures := repository.NewFixtureRepository(database.DB)
	standings := repository.NewStandingsRepository(database.DB)
	playerStats := repository.NewPlayerStatsRepository(database.DB)
	auctions := repository.NewAuctionRepository(database.DB)
	xis := repository.NewPlayingXIRepository(database.DB)
	matches := repository.NewMatchRepository(database.DB)

	svc := service.New(nil, cfg.Career, careers, players, teams, seasons, fixtures, standings, playerStats, auctions, xis, matches)
	return svc, database.DB, nil
}

func createCareer(cmd *cobra.Command, userID, name string, userTeamIdx int) error {
	if userID == "" || name == "" {
		return fmt.Errorf("error: --user and --name are required")
	}

	echo.Header("Creating Career")

	svc, sqlDB, err := careerServiceForCmd(cmd)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	career, err := svc.CreateCareer(cmd.Context(), core.UserID(userID), name, userTeamIdx)
	if err != nil {
		return fmt.Errorf("error: failed to create career: %w", err)
	}

	echo.Successf("✓ Created career %q", career.Name)
	echo.Infof("  ID: %s", career.ID)
	echo.Infof("  User team: %s", career.UserTeamID)
	echo.Infof("  Season: %d", career.SeasonNumber)
	return nil
}

func listCareers(cmd *cobra.Command, userID string) error {
	if userID == "" {
		return fmt.Errorf("error: --user is required")
	}

	echo.Header("Careers")

	svc, sqlDB, err := careerServiceForCmd(cmd)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	careers, err := svc.Careers.ListByUser(cmd.Context(), core.UserID(userID))
	if err != nil {
		return fmt.Errorf("error: failed to list careers: %w", err)
	}

	if len(careers) == 0 {
		echo.Info("No careers found")
		return nil
	}

	for _, c := range careers {
		echo.Infof("  %s — %q (season %d, status %s)", c.ID, c.Name, c.SeasonNumber, c.Status)
	}
	return nil
}
