package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the settings read from .tick, TICK_* env vars and defaults.
type Config interface {
	BasePath() string
	LogLevel() string
	RoutinesHeading() string
}

const (
	DefaultPath            = "~/.tick"
	DefaultLogLevel        = "warn"
	DefaultRoutinesHeading = "Routines"
)

func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("routines_heading", DefaultRoutinesHeading)
	v.SetConfigName(".tick") // .yaml is implicit
	v.SetEnvPrefix("TICK")
	v.AutomaticEnv()

	if override := os.Getenv("TICK_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expanding path: %w", err)
	}

	return &fileConfig{
		Path:     path,
		Level:    v.GetString("log_level"),
		Routines: v.GetString("routines_heading"),
	}, nil
}

type fileConfig struct {
	Path     string `json:"path"`
	Level    string `json:"log_level"`
	Routines string `json:"routines_heading"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) LogLevel() string {
	return f.Level
}

func (f *fileConfig) RoutinesHeading() string {
	if f.Routines == "" {
		return DefaultRoutinesHeading
	}
	return f.Routines
}

// StaticConfig is a Config with fixed values.
type StaticConfig struct {
	Path     string
	Level    string
	Routines string
}

func (s StaticConfig) BasePath() string { return s.Path }

func (s StaticConfig) LogLevel() string { return s.Level }

func (s StaticConfig) RoutinesHeading() string {
	if s.Routines == "" {
		return DefaultRoutinesHeading
	}
	return s.Routines
}
