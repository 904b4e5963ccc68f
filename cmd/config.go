package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"db-meta/internal/database"
	"db-meta/internal/dialect"
	"db-meta/internal/engine"
)

type FirebirdConfig struct {
	User         string            `mapstructure:"user"`
	Password     string            `mapstructure:"password"`
	Host         string            `mapstructure:"host"`
	Port         int               `mapstructure:"port"`
	DatabaseFile string            `mapstructure:"database_file"`
	Params       map[string]string `mapstructure:"params"`
}

// Settings are the connection parameters used when a command builds its own
// DSN or fills in a key/value connection string.
func (c FirebirdConfig) Settings() database.Settings {
	return database.Settings{
		User:     c.User,
		Password: c.Password,
		Host:     c.Host,
		Port:     c.Port,
		Params:   c.Params,
	}
}

type UpdateConfig struct {
	AlreadyExistsPatterns []string `mapstructure:"already_exists_patterns"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type OutputConfig struct {
	Progress bool `mapstructure:"progress"`
}

type Config struct {
	Firebird FirebirdConfig `mapstructure:"firebird"`
	Update   UpdateConfig   `mapstructure:"update"`
	Log      LogConfig      `mapstructure:"log"`
	Output   OutputConfig   `mapstructure:"output"`
}

func setDefaults() {
	d := database.DefaultSettings()
	viper.SetDefault("firebird.user", d.User)
	viper.SetDefault("firebird.password", d.Password)
	viper.SetDefault("firebird.host", d.Host)
	viper.SetDefault("firebird.port", d.Port)
	viper.SetDefault("firebird.database_file", engine.DefaultDatabaseFile)
	viper.SetDefault("firebird.params", map[string]string{})
	viper.SetDefault("update.already_exists_patterns", dialect.DefaultExistsPatterns)
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("output.progress", false)
}

// LoadConfig returns the effective configuration (Flag > Env > Config > Default).
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
