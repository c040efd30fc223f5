package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Game   GameConfig   `mapstructure:"game"`
	AI     AIConfig     `mapstructure:"ai"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type GameConfig struct {
	ManaRegen int    `mapstructure:"mana_regen"`
	LogLevel  string `mapstructure:"log_level"`
	Debug     bool   `mapstructure:"debug"`
}

type AIConfig struct {
	Difficulty     string `mapstructure:"difficulty"`
	MoveDelayMs    int    `mapstructure:"move_delay_ms"`
	SearchBudgetMs int    `mapstructure:"search_budget_ms"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Enable environment variables
	viper.SetEnvPrefix("ARCHESS")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("game.mana_regen", 10)
	viper.SetDefault("game.log_level", "info")
	viper.SetDefault("game.debug", false)
	viper.SetDefault("ai.difficulty", "medium")
	viper.SetDefault("ai.move_delay_ms", 600)
	viper.SetDefault("ai.search_budget_ms", 5000)

	// Read config
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, use defaults
			return loadDefaults(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func loadDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Game: GameConfig{
			ManaRegen: 10,
			LogLevel:  "info",
		},
		AI: AIConfig{
			Difficulty:     "medium",
			MoveDelayMs:    600,
			SearchBudgetMs: 5000,
		},
	}
}
