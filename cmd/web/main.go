package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/de-tools/library-reports/pkg/server"
	"github.com/de-tools/library-reports/pkg/services/config"
	"github.com/de-tools/library-reports/pkg/services/reports"
	"github.com/de-tools/library-reports/pkg/store/postgres"
	sqlstore "github.com/de-tools/library-reports/pkg/store/sql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath      string
	profilesPath string
	profile      string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the library reports",
		RunE:  runServer,
	}

	home, _ := os.UserHomeDir()
	defaultProfiles := filepath.Join(home, ".libraryreports")

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a config file (yaml, toml or json)")
	rootCmd.Flags().StringVar(&profilesPath, "profiles", defaultProfiles,
		"Path to the connection profiles file (default is $HOME/.libraryreports)")
	rootCmd.Flags().StringVarP(&profile, "profile", "p", "", "Connection profile to use")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	settings, err := config.LoadWithProfile(cmd.Context(), cfgPath, profilesPath, profile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := zerolog.ParseLevel(settings.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", settings.Log.Level, err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	db, err := postgres.NewDB(ctx, settings.Database.Postgres())
	if err != nil {
		return fmt.Errorf("failed to connect to the database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close database pool")
		}
	}()

	executor, err := sqlstore.NewExecutor(db, settings.Database.QueryTimeout)
	if err != nil {
		return fmt.Errorf("failed to create query executor: %w", err)
	}

	svc, err := reports.NewService(reports.DefaultRegistry(), executor)
	if err != nil {
		return fmt.Errorf("failed to create report service: %w", err)
	}

	logger.Info().
		Str("host", settings.Database.Host).
		Int("port", settings.Database.Port).
		Str("database", settings.Database.Name).
		Msg("connected to the library database")

	addr := net.JoinHostPort(settings.Server.Host, settings.Server.Port)
	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Reports: svc,
		},
	})

	return webAPI.Start()
}
