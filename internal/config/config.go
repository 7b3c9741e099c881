package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	JWTExpiry          time.Duration `mapstructure:"jwt_expiry"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`

	// Token buckets per client IP. The auth bucket guards login and
	// registration against credential stuffing.
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second"`
	RateLimitBurst     int     `mapstructure:"rate_limit_burst"`
	AuthRatePerMinute  float64 `mapstructure:"auth_rate_per_minute"`
	AuthRateBurst      int     `mapstructure:"auth_rate_burst"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Load reads the YAML config at path and layers environment variables
// on top (API_PORT, POSTGRES_HOST, ...). The file is watched so a
// redeploy-free tweak is picked up live.
func Load(path string) (*AppConfig, error) {
	viper.SetConfigFile(path)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("api.environment", "development")
	viper.SetDefault("api.port", "8080")
	viper.SetDefault("api.jwt_expiry", "24h")
	viper.SetDefault("api.rate_limit_per_second", 20)
	viper.SetDefault("api.rate_limit_burst", 40)
	viper.SetDefault("api.auth_rate_per_minute", 5)
	viper.SetDefault("api.auth_rate_burst", 5)
	viper.SetDefault("gin.mode", "release")
	viper.SetDefault("postgres.ssl_mode", "disable")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		if err := viper.Unmarshal(conf); err != nil {
			zap.L().Error("failed to reload config", zap.Error(err))

			return
		}

		zap.L().Info("config reloaded", zap.String("file", e.Name))
	})
	viper.WatchConfig()

	return conf, nil
}
