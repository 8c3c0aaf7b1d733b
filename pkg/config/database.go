package config

import (
	"fmt"

	dbutils "github.com/tendant/db-utils/db"
)

// DatabaseConfig holds PostgreSQL database configuration
type DatabaseConfig struct {
	// Persistence selects the repository backend: postgres or memory
	Persistence string `env:"ALCHEMIST_PERSISTENCE" env-default:"postgres"`

	Host     string `env:"ALCHEMIST_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"ALCHEMIST_PG_PORT" env-default:"5432"`
	Database string `env:"ALCHEMIST_PG_DATABASE" env-default:"alchemist_db"`
	User     string `env:"ALCHEMIST_PG_USER" env-default:"alchemist"`
	Password string `env:"ALCHEMIST_PG_PASSWORD" env-default:"pwd"`
}

// ToDatabaseURL converts the config to a PostgreSQL connection URL
func (d DatabaseConfig) ToDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Database)
}

// ToDbConfig converts the config to a db-utils DbConfig
func (d DatabaseConfig) ToDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}

func (d DatabaseConfig) validate() ValidationErrors {
	if d.Persistence == "memory" {
		return nil
	}
	return CollectErrors(
		RequireNonEmpty("ALCHEMIST_PG_HOST", d.Host),
		RequireValidPort("ALCHEMIST_PG_PORT", d.Port),
		RequireNonEmpty("ALCHEMIST_PG_DATABASE", d.Database),
	)
}
