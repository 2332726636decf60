package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bancarella/revenue-tracker/config"
	"bancarella/revenue-tracker/internal/cli"
	"bancarella/revenue-tracker/internal/db/revenues"
	"bancarella/revenue-tracker/internal/localtime"
	"bancarella/revenue-tracker/internal/providers"
	"bancarella/revenue-tracker/internal/roster"
	"bancarella/revenue-tracker/internal/service"
)

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		logLevel = zerolog.WarnLevel
	}
	appLogger := zerolog.New(os.Stderr).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Timestamp().
		Logger()
	log.Logger = appLogger

	db, dbErr := initializeDatabase(conf)
	if dbErr != nil {
		appLogger.Fatal().Err(dbErr).Msg("failed to initialize database")
	}

	whoDefaults, err := roster.Load(conf.WhoDefaultsPath)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to load who defaults")
	}

	instants, err := localtime.NewResolver()
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to build timezone resolver")
	}

	repo := revenues.NewRepository(db)
	geocoder := providers.NewGeocodingService(conf.OpenWeatherAPIKey, conf.GeocodingBaseURL, conf.HTTPTimeoutDuration())
	weather := providers.NewHistoricalWeatherService(conf.OpenWeatherAPIKey, conf.WeatherBaseURL, conf.HTTPTimeoutDuration())

	revenueService := service.NewRevenueService(geocoder, instants, weather, repo, whoDefaults)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	menu := cli.NewMenu(revenueService, repo, conf.HTTPTimeoutDuration(), os.Stdin, os.Stdout)
	menu.Run(ctx)
}

func initializeDatabase(conf *config.Config) (*gorm.DB, error) {
	if dir := filepath.Dir(conf.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(conf.DatabasePath), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Idempotent: creates the revenues table on first use, no-op afterwards.
	if err := db.AutoMigrate(&revenues.Record{}); err != nil {
		return nil, err
	}

	return db, nil
}
