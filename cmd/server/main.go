package main

import (
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stylerack/stylerack/internal/api"
	"github.com/stylerack/stylerack/internal/composer"
	"github.com/stylerack/stylerack/internal/database"
	"github.com/stylerack/stylerack/internal/processing"
	"github.com/stylerack/stylerack/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment")
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && os.Getenv("LOG_LEVEL") != "" {
		zerolog.SetGlobalLevel(level)
	}
	logger := log.Logger
	if os.Getenv("LOG_PRETTY") == "1" {
		logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	maxUploadSize := os.Getenv("MAX_UPLOAD_SIZE")
	if maxUploadSize == "" {
		maxUploadSize = "10485760"
	}
	maxSize, err := strconv.ParseInt(maxUploadSize, 10, 64)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid MAX_UPLOAD_SIZE")
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	var dbConfig database.Config
	dbConfig.Type = dbType

	if dbType == "postgres" {
		dbConfig.Host = os.Getenv("DB_HOST")
		if dbConfig.Host == "" {
			dbConfig.Host = "localhost"
		}

		dbPortStr := os.Getenv("DB_PORT")
		if dbPortStr == "" {
			dbPortStr = "5432"
		}
		dbPort, err := strconv.Atoi(dbPortStr)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid DB_PORT")
		}
		dbConfig.Port = dbPort

		dbConfig.User = os.Getenv("DB_USER")
		if dbConfig.User == "" {
			dbConfig.User = "stylerack"
		}

		dbConfig.Password = os.Getenv("DB_PASSWORD")
		if dbConfig.Password == "" {
			dbConfig.Password = "stylerack_dev"
		}

		dbConfig.Name = os.Getenv("DB_NAME")
		if dbConfig.Name == "" {
			dbConfig.Name = "stylerack"
		}
	} else {
		dbConfig.SQLitePath = os.Getenv("DB_PATH")
		if dbConfig.SQLitePath == "" {
			dbConfig.SQLitePath = "./stylerack.db"
		}
	}

	localStorage, err := storage.NewLocalStorage(uploadDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}

	db, err := database.NewDB(dbConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	deletionPolicy := database.DeletionPolicyOrphan
	if os.Getenv("ITEM_DELETE_CASCADE") == "1" {
		deletionPolicy = database.DeletionPolicyCascade
	}
	itemRepo := database.NewItemRepository(db, deletionPolicy)
	outfitRepo := database.NewOutfitRepository(db)

	var processor processing.Processor
	if processorURL := os.Getenv("PROCESSOR_URL"); processorURL != "" {
		processor = processing.NewClient(processorURL)
	} else {
		logger.Warn().Msg("PROCESSOR_URL not set, falling back to filename-based category prediction")
	}

	savePolicy := composer.RequireAnySlot
	if os.Getenv("OUTFIT_REQUIRE_TOP_BOTTOM") == "1" {
		savePolicy = composer.RequireTopAndBottom
	}

	app := &api.App{
		Storage:       localStorage,
		DB:            db,
		ItemRepo:      itemRepo,
		OutfitRepo:    outfitRepo,
		Processor:     processor,
		Assembler:     composer.NewAssembler(savePolicy),
		MaxUploadSize: maxSize,
		UploadDir:     uploadDir,
		Logger:        logger,
	}

	router := api.NewRouter(app)

	logger.Info().
		Str("port", port).
		Str("upload_dir", uploadDir).
		Str("db_type", dbType).
		Int64("max_upload_size", maxSize).
		Msg("server starting")

	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
