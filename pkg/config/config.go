package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the complete process configuration
type Config struct {
	BaseUrl         string `env:"BASE_URL" env-default:"http://localhost:5173"`
	Host            string `env:"HOST" env-default:"0.0.0.0"`
	Port            int    `env:"PORT" env-default:"8000"`
	DatabaseConfig  DatabaseConfig
	JWTConfig       JWTConfig
	EmailConfig     EmailConfig
	LoginCodeConfig LoginCodeConfig
	CORSConfig      CORSConfig
	SearchConfig    SearchConfig
}

// Load reads an optional .env file into the environment and then fills
// Config from environment variables.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
			continue
		}
		slog.Info("Loaded env file", "file", f)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every config group
func (c Config) Validate() error {
	return Validate(
		c.validatePort,
		c.DatabaseConfig.validate,
		c.JWTConfig.validate,
		c.EmailConfig.validate,
		c.LoginCodeConfig.validate,
		c.SearchConfig.validate,
	)
}

func (c Config) validatePort() ValidationErrors {
	if c.Port < 1 || c.Port > 65535 {
		return ValidationErrors{{Field: "PORT", Message: "port must be between 1 and 65535"}}
	}
	return nil
}
