package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"bancarella/revenue-tracker/internal/providers"
)

type Config struct {
	ServiceName string

	DatabasePath    string
	WhoDefaultsPath string

	Env         string
	LogLevel    string
	HTTPTimeout int32

	OpenWeatherAPIKey string
	GeocodingBaseURL  string
	WeatherBaseURL    string
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "revenue-tracker")
	v.SetDefault("DATABASE_PATH", "data/revenues.db")
	v.SetDefault("WHO_DEFAULTS_PATH", "who_defaults.json")
	v.SetDefault("HTTP_TIMEOUT", 10)
	v.SetDefault("GEOCODING_BASE_URL", providers.DefaultGeocodingBaseURL)
	v.SetDefault("WEATHER_BASE_URL", providers.DefaultTimemachineBaseURL)

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	config := &Config{
		ServiceName:       v.GetString("SERVICE_NAME"),
		DatabasePath:      v.GetString("DATABASE_PATH"),
		WhoDefaultsPath:   v.GetString("WHO_DEFAULTS_PATH"),
		Env:               v.GetString("ENV"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		HTTPTimeout:       v.GetInt32("HTTP_TIMEOUT"),
		OpenWeatherAPIKey: v.GetString("OPENWEATHER_API_KEY"),
		GeocodingBaseURL:  v.GetString("GEOCODING_BASE_URL"),
		WeatherBaseURL:    v.GetString("WEATHER_BASE_URL"),
	}

	if config.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("missing OPENWEATHER_API_KEY: set it in the environment or a .env file")
	}

	return config, nil
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}
