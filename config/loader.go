package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load builds the configuration: defaults, then the YAML file at path (a
// missing file is fine), then environment overrides, then validation. A
// .env file is loaded first when present.
func Load(path string) (AppConfig, error) {
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// no file, defaults + env only
	default:
		return AppConfig{}, err
	}

	applyEnv(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setString(&cfg.Server.Host, "HOST")
	setInt(&cfg.Server.Port, "PORT")
	setString(&cfg.Data.Dir, "DATA_DIR")
	setInt(&cfg.Data.CacheDurationSec, "CACHE_DURATION")
	setInt(&cfg.Crowd.ValidationTimeoutSec, "CROWD_VALIDATION_TIMEOUT")
	setInt(&cfg.Crowd.MaxPerTrain, "MAX_VALIDATIONS_PER_TRAIN")
	setFloat(&cfg.Delay.BaseProbability, "BASE_DELAY_PROBABILITY")
	setInt(&cfg.Delay.MaxMinutes, "MAX_DELAY_MINUTES")
	setString(&cfg.Crowd.Backend, "CROWD_BACKEND")
	setString(&cfg.Crowd.File, "CROWD_FILE")
	setString(&cfg.Crowd.DatabaseURL, "DATABASE_URL")
	setString(&cfg.Events.NATSURL, "NATS_URL")
	setString(&cfg.LogLevel, "LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
