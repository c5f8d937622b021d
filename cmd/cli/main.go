package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/de-tools/library-reports/pkg/runtime/terminal"
	"github.com/de-tools/library-reports/pkg/services/config"
	"github.com/de-tools/library-reports/pkg/services/reports"
	"github.com/de-tools/library-reports/pkg/store/postgres"
	sqlstore "github.com/de-tools/library-reports/pkg/store/sql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var (
	cfgPath      string
	profilesPath string
	profile      string
)

func connect(ctx context.Context) (reports.Executor, io.Closer, error) {
	settings, err := config.LoadWithProfile(ctx, cfgPath, profilesPath, profile)
	if err != nil {
		return nil, nil, err
	}

	db, err := postgres.NewDB(ctx, settings.Database.Postgres())
	if err != nil {
		return nil, nil, err
	}

	executor, err := sqlstore.NewExecutor(db, settings.Database.QueryTimeout)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return executor, db, nil
}

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()

	cli := terminal.NewCLI(terminal.Options{
		Registry: reports.DefaultRegistry(),
		Connect:  connect,
		Output:   os.Stdout,
	})

	home, _ := os.UserHomeDir()
	flags := cli.Root().PersistentFlags()
	flags.StringVarP(&cfgPath, "config", "c", "", "Path to a config file (yaml, toml or json)")
	flags.StringVar(&profilesPath, "profiles", filepath.Join(home, ".libraryreports"), "Path to the connection profiles file")
	flags.StringVarP(&profile, "profile", "p", "", "Connection profile to use")

	if err := cli.Root().ExecuteContext(logger.WithContext(context.Background())); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
