package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	EnvVars  EnvVars   `json:"env"`
	Messages *Messages `json:"-"`
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	MealDBBaseURL   string        `env:"MEALDB_BASE_URL" envDefault:"https://www.themealdb.com/api/json/v1/1"`
	MealDBTimeout   time.Duration `env:"MEALDB_TIMEOUT" envDefault:"10s"`
	RateLimitRPS    int           `env:"RATE_LIMIT_RPS" envDefault:"10"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:"," optional:"true"`
	ProfanityFilter bool          `env:"PROFANITY_FILTER" envDefault:"false" optional:"true"`
	MessagesPath    string        `env:"MESSAGES_PATH" envDefault:"configs/messages.yaml" optional:"true"`
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	config.Messages = DefaultMessages()
	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set
// and that numeric limits are positive.
func (c *Config) CheckConfigEnvFields() error {
	if err := checkFieldsRecursive(reflect.ValueOf(c.EnvVars)); err != nil {
		return err
	}
	if c.EnvVars.RateLimitRPS <= 0 {
		return fmt.Errorf("$RATE_LIMIT_RPS must be positive, got %d", c.EnvVars.RateLimitRPS)
	}
	return nil
}

// Msgs returns the configured messages, falling back to the defaults.
func (c *Config) Msgs() *Messages {
	if c == nil || c.Messages == nil {
		return DefaultMessages()
	}
	return c.Messages
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if field.IsZero() {
			return fmt.Errorf("$%s must be set", fieldType.Tag.Get("env"))
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}
