package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Store    StoreConfig    `mapstructure:"store"`
	Log      LogConfig      `mapstructure:"log"`
	Phonetic PhoneticConfig `mapstructure:"phonetic"`
	Review   ReviewConfig   `mapstructure:"review"`
}

// StoreConfig holds record store configuration
type StoreConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=panic fatal error warn warning info debug trace"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// PhoneticConfig selects the phonetic hint generator
type PhoneticConfig struct {
	Language string `mapstructure:"language" validate:"oneof=zh ja none"`
}

// ReviewConfig holds defaults for interactive review sessions
type ReviewConfig struct {
	Count int `mapstructure:"count" validate:"gte=0"`
}

// ConfigFileKey is the viper key holding an explicit config file path.
const ConfigFileKey = "config"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	if file := viper.GetString(ConfigFileKey); file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("phraser")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/.config/phraser")
	}

	// Set default values
	setDefaults()

	// Enable reading from environment variables
	viper.SetEnvPrefix("PHRASER")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read configuration file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.Phonetic.Language = strings.ToLower(strings.TrimSpace(config.Phonetic.Language))
	config.Log.Level = strings.ToLower(strings.TrimSpace(config.Log.Level))

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks field constraints declared in struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: %s %s", fe.Namespace(), fe.Tag(), fe.Param()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Store defaults
	viper.SetDefault("store.path", "phraser.db")

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Phonetic defaults
	viper.SetDefault("phonetic.language", "zh")

	// Review defaults
	viper.SetDefault("review.count", 0)
}

// DatabaseDriver returns the database/sql driver name for the record store.
func (c *Config) DatabaseDriver() string {
	return "sqlite3"
}

// DatabaseURL returns the SQLite DSN for the record store.
func (c *Config) DatabaseURL() string {
	path := strings.TrimSpace(c.Store.Path)
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path
	}
	return "file:" + path + "?_busy_timeout=5000&_journal_mode=WAL"
}
