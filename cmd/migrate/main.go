package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stylerack/stylerack/internal/database"
)

func main() {
	var (
		dbType         = flag.String("db", "postgres", "Database type (postgres or sqlite)")
		host           = flag.String("host", "localhost", "Database host")
		port           = flag.Int("port", 5432, "Database port")
		user           = flag.String("user", "stylerack", "Database user")
		password       = flag.String("password", "stylerack_dev", "Database password")
		dbName         = flag.String("name", "stylerack", "Database name")
		sqlitePath     = flag.String("sqlite", "./stylerack.db", "SQLite database path")
		migrationsPath = flag.String("migrations", "./migrations", "Path to migrations directory")
		status         = flag.Bool("status", false, "Show migration status only")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config := database.Config{
		Type:       *dbType,
		Host:       *host,
		Port:       *port,
		User:       *user,
		Password:   *password,
		Name:       *dbName,
		SQLitePath: *sqlitePath,
	}

	if env := os.Getenv("DB_TYPE"); env != "" {
		config.Type = env
	}
	if env := os.Getenv("DB_HOST"); env != "" {
		config.Host = env
	}
	if env := os.Getenv("DB_USER"); env != "" {
		config.User = env
	}
	if env := os.Getenv("DB_PASSWORD"); env != "" {
		config.Password = env
	}
	if env := os.Getenv("DB_NAME"); env != "" {
		config.Name = env
	}
	if env := os.Getenv("DB_PATH"); env != "" {
		config.SQLitePath = env
	}

	db, err := database.NewDB(config)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if *status {
		migrator := database.NewMigrator(db.Conn(), config.Type)
		if err := migrator.Initialize(); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize migrator")
		}

		applied, err := migrator.AppliedMigrations()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to read applied migrations")
		}
		migrations, err := database.LoadMigrations(*migrationsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load migrations")
		}

		for _, m := range migrations {
			state := "pending"
			if applied[m.Version] {
				state = "applied"
			}
			fmt.Printf("%s  %s_%s\n", state, m.Version, m.Name)
		}
		return
	}

	if err := db.RunMigrations(*migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("migrations complete")
}
