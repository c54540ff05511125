package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

// AuthConfig holds the shared operator password gate.
type AuthConfig struct {
	PasswordHash      string `mapstructure:"password_hash"`
	JWTSecret         string `mapstructure:"jwt_secret"`
	Issuer            string `mapstructure:"issuer"`
	ExpireHours       int    `mapstructure:"expire_hours"`
	MaxFailedAttempts int    `mapstructure:"max_failed_attempts"`
	LockMinutes       int    `mapstructure:"lock_minutes"`
}

type SecurityConfig struct {
	EncryptionKey string `mapstructure:"encryption_key"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type BackupConfig struct {
	Dir string `mapstructure:"dir"`
}

// BusinessConfig describes the café itself.
type BusinessConfig struct {
	Name     string `mapstructure:"name"`
	Timezone string `mapstructure:"timezone"`
	Currency string `mapstructure:"currency"`
	SeedMenu bool   `mapstructure:"seed_menu"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Security SecurityConfig `mapstructure:"security"`
	Log      LogConfig      `mapstructure:"log"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Business BusinessConfig `mapstructure:"business"`
}

// Location resolves business.timezone, falling back to the host zone.
func (c *Config) Location() *time.Location {
	if c.Business.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Business.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// TokenTTL is the session lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.ExpireHours) * time.Hour
}

var (
	appConfig *Config
	loadErr   error
	once      sync.Once
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.path", "data/cafe.db")
	v.SetDefault("database.log_mode", false)
	// empty defaults make the keys visible to AutomaticEnv during Unmarshal
	v.SetDefault("auth.password_hash", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("security.encryption_key", "")
	v.SetDefault("auth.issuer", "wellness-cafe")
	v.SetDefault("auth.expire_hours", 12)
	v.SetDefault("auth.max_failed_attempts", 5)
	v.SetDefault("auth.lock_minutes", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("backup.dir", "data/backups")
	v.SetDefault("business.name", "Wellness Café")
	v.SetDefault("business.timezone", "Asia/Kuala_Lumpur")
	v.SetDefault("business.currency", "RM")
	v.SetDefault("business.seed_menu", true)
}

// Read builds a Config from the given file (optional) plus environment.
// A .env file in the working directory is loaded first; variables use the
// WC_ prefix, e.g. WC_SERVER_PORT=9000 or WC_AUTH_PASSWORD_HASH.
func Read(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("WC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.Auth.PasswordHash == "" {
		return fmt.Errorf("auth.password_hash is required")
	}
	if c.Security.EncryptionKey == "" {
		return fmt.Errorf("security.encryption_key is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if _, err := time.LoadLocation(c.Business.Timezone); err != nil {
		return fmt.Errorf("business.timezone: %w", err)
	}
	return nil
}

// Load reads the configuration once for the process.
func Load(path string) (*Config, error) {
	once.Do(func() {
		appConfig, loadErr = Read(path)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return appConfig, nil
}
