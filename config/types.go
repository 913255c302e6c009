package config

// Version is the service's API version, reported by health and status
// endpoints.
const Version = "2.0.0"

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port" validate:"gt=0,lte=65535"`
}

// DataConfig locates the schedule reference data and its cache policy.
type DataConfig struct {
	Dir              string `yaml:"dir" validate:"required"`
	CacheDurationSec int    `yaml:"cacheDurationSec" validate:"gt=0"`
}

// DelayConfig bounds the synthetic delay model.
type DelayConfig struct {
	BaseProbability float64 `yaml:"baseProbability" validate:"gt=0,lte=1"`
	MaxMinutes      int     `yaml:"maxMinutes" validate:"gt=0"`
}

// CrowdConfig selects and tunes the crowd validation backend.
type CrowdConfig struct {
	Backend              string `yaml:"backend" validate:"oneof=file memory postgres"`
	File                 string `yaml:"file"`
	DatabaseURL          string `yaml:"databaseURL"`
	ValidationTimeoutSec int    `yaml:"validationTimeoutSec" validate:"gt=0"`
	MaxPerTrain          int    `yaml:"maxPerTrain" validate:"gt=0"`
}

// EventsConfig enables NATS event publishing when a URL is set.
type EventsConfig struct {
	NATSURL string `yaml:"natsURL" validate:"omitempty,url"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Server   ServerConfig `yaml:"server"`
	Data     DataConfig   `yaml:"data"`
	Delay    DelayConfig  `yaml:"delay"`
	Crowd    CrowdConfig  `yaml:"crowd"`
	Events   EventsConfig `yaml:"events"`
	LogLevel string       `yaml:"logLevel"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{Host: "0.0.0.0", Port: 5000},
		Data:   DataConfig{Dir: ".", CacheDurationSec: 300},
		Delay:  DelayConfig{BaseProbability: 0.3, MaxMinutes: 120},
		Crowd: CrowdConfig{
			Backend:              "file",
			File:                 "crowd_validations.json",
			ValidationTimeoutSec: 7200,
			MaxPerTrain:          1000,
		},
		LogLevel: "info",
	}
}
