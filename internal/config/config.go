package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	ServerPort     string
	JWTSecret      string
	JWTExpiryHours int
	AutoMigrate    bool
	LogLevel       string
	LogFormat      string
	GinMode        string
	Version        string
}

var defaults = map[string]any{
	"DB_HOST":          "localhost",
	"DB_PORT":          "5431",
	"DB_USER":          "kanban_user",
	"DB_PASSWORD":      "kanban_pass",
	"DB_NAME":          "kanban_db",
	"DB_SSLMODE":       "disable",
	"SERVER_PORT":      "8080",
	"JWT_SECRET":       "supersecretkey",
	"JWT_EXPIRY_HOURS": 24,
	"AUTO_MIGRATE":     true,
	"LOG_LEVEL":        "info",
	"LOG_FORMAT":       "text",
	"GIN_MODE":         "release",
	"APP_VERSION":      "local",
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("⚠️  No .env file found, using system environment variables")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		ServerPort:     v.GetString("SERVER_PORT"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		AutoMigrate:    v.GetBool("AUTO_MIGRATE"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
		GinMode:        v.GetString("GIN_MODE"),
		Version:        v.GetString("APP_VERSION"),
	}
}
