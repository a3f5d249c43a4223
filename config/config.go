package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const devJWTSecret = "quizhub-development-secret"

type Config struct {
	Env         string
	LogLevel    string
	Server      Server
	Database    Database
	Redis       Redis
	JWT         JWT
	CORS        CORS
	Leaderboard Leaderboard
}

type Server struct {
	Port string
}

type Database struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	DSN      string // overrides the individual fields when set
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type JWT struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type CORS struct {
	AllowOrigins []string
}

type Leaderboard struct {
	CacheTTL time.Duration
}

// ConnectionString returns the DSN handed to the gorm driver.
func (d Database) ConnectionString() string {
	if d.DSN != "" {
		return d.DSN
	}
	if d.Driver == "sqlite" {
		return d.Name
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// NewConfig reads envFile (or ./.env when empty) and the process environment.
// A missing file is not an error; environment variables alone are enough.
func NewConfig(envFile string) (*Config, error) {
	v := viper.New()
	if envFile != "" {
		v.SetConfigFile(envFile)
	} else {
		v.SetConfigName(".env")
		v.AddConfigPath(".")
	}
	v.SetConfigType("env")

	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Env = v.GetString("APP_ENV")
	config.LogLevel = v.GetString("LOG_LEVEL")
	config.Server.Port = v.GetString("SERVER_PORT")

	config.Database.Driver = strings.ToLower(v.GetString("DATABASE_DRIVER"))
	config.Database.Host = v.GetString("DATABASE_HOST")
	config.Database.Port = v.GetString("DATABASE_PORT")
	config.Database.User = v.GetString("DATABASE_USER")
	config.Database.Password = v.GetString("DATABASE_PASSWORD")
	config.Database.Name = v.GetString("DATABASE_NAME")
	config.Database.SSLMode = v.GetString("DATABASE_SSLMODE")
	config.Database.DSN = v.GetString("DATABASE_DSN")

	config.Redis.Addr = v.GetString("REDIS_ADDR")
	config.Redis.Password = v.GetString("REDIS_PASSWORD")
	config.Redis.DB = v.GetInt("REDIS_DB")

	config.JWT.Secret = v.GetString("JWT_SECRET")
	config.JWT.Issuer = v.GetString("JWT_ISSUER")
	config.JWT.TTL = v.GetDuration("JWT_TTL")

	config.CORS.AllowOrigins = splitList(v.GetString("CORS_ORIGINS"))
	config.Leaderboard.CacheTTL = v.GetDuration("LEADERBOARD_TTL")

	if err := config.validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("env", config.Env).
		Str("port", config.Server.Port).
		Str("db_driver", config.Database.Driver).
		Bool("redis", config.Redis.Addr != "").
		Strs("cors_origins", config.CORS.AllowOrigins).
		Msg("Config loaded")
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_NAME", "quizhub")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_ISSUER", "http://localhost:44398")
	v.SetDefault("JWT_TTL", "20m")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("LEADERBOARD_TTL", "5m")
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	if c.JWT.TTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.JWT.Secret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
		log.Warn().Msg("JWT_SECRET not set, using development secret")
		c.JWT.Secret = devJWTSecret
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
