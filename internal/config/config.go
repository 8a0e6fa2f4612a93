package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Sheets   SheetsConfig   `mapstructure:"sheets"`
	Client   ClientConfig   `mapstructure:"client"`
}

type ServerConfig struct {
	Port        string `mapstructure:"port"`
	AppName     string `mapstructure:"app_name"`
	Env         string `mapstructure:"env"`
	BodyLimitMB int    `mapstructure:"body_limit_mb"`
	CORSOrigins string `mapstructure:"cors_origins"`
}

// DatabaseConfig selects the record store. Driver is "sqlite" (Path is used)
// or "postgres" (the connection fields are used).
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
}

type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpireMinutes int    `mapstructure:"expire_minutes"`
	BcryptCost    int    `mapstructure:"bcrypt_cost"`
}

type RedisConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Addr          string `mapstructure:"addr"`
	Password      string `mapstructure:"password"`
	DB            int    `mapstructure:"db"`
	ChannelPrefix string `mapstructure:"channel_prefix"`
}

type SheetsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	CredentialPath string `mapstructure:"credential_path"`
	SpreadsheetID  string `mapstructure:"spreadsheet_id"`
	SheetName      string `mapstructure:"sheet_name"`
}

type ClientConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	SessionFile string `mapstructure:"session_file"`
	PageSize    int    `mapstructure:"page_size"`
}

// TokenTTL is the lifetime of issued bearer tokens.
func (c JWTConfig) TokenTTL() time.Duration {
	return time.Duration(c.ExpireMinutes) * time.Minute
}

// IsProduction reports whether cookies should be marked Secure.
func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.app_name", "employee-directory")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.body_limit_mb", 16)
	v.SetDefault("server.cors_origins", "*")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/employees.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbname", "employees")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "UTC")

	v.SetDefault("jwt.expire_minutes", 60)
	v.SetDefault("jwt.bcrypt_cost", 10)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.channel_prefix", "employees")

	v.SetDefault("sheets.sheet_name", "Employees")

	v.SetDefault("client.base_url", "http://localhost:5000")
	v.SetDefault("client.session_file", ".employee-directory/session.json")
	v.SetDefault("client.page_size", 10)
}

// Load reads config.yaml from the working directory or ./config and overlays
// EMPDIR_* environment variables (jwt.secret -> EMPDIR_JWT_SECRET). A missing
// config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("EMPDIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}

// AutomaticEnv only resolves keys viper already knows about; keys without a
// default (jwt.secret, database.password, ...) need an explicit binding.
func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		"jwt.secret",
		"database.password",
		"redis.password",
		"sheets.enabled",
		"sheets.credential_path",
		"sheets.spreadsheet_id",
		"redis.enabled",
		"redis.db",
	} {
		_ = v.BindEnv(key)
	}
}
