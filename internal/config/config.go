package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string        `mapstructure:"server_port"`
	StoreDriver     string        `mapstructure:"store_driver"`
	DatabaseDSN     string        `mapstructure:"database_dsn"`
	ResetDB         bool          `mapstructure:"reset_db"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisDB         int           `mapstructure:"redis_db"`
	RedisPass       string        `mapstructure:"redis_password"`
	BcryptCost      int           `mapstructure:"bcrypt_cost"`
	HistoryCacheTTL time.Duration `mapstructure:"history_cache_ttl"`
	QRCacheTTL      time.Duration `mapstructure:"qr_cache_ttl"`
	QRSize          int           `mapstructure:"qr_size"`
	AllowedOrigins  []string      `mapstructure:"cors_allowed_origins"`
	SwaggerHost     string        `mapstructure:"swagger_host"`
}

var defaults = map[string]interface{}{
	"server_port":          "3000",
	"store_driver":         DriverMemory,
	"database_dsn":         "",
	"reset_db":             false,
	"redis_addr":           "",
	"redis_db":             0,
	"redis_password":       "",
	"bcrypt_cost":          10,
	"history_cache_ttl":    30 * time.Second,
	"qr_cache_ttl":         10 * time.Minute,
	"qr_size":              300,
	"cors_allowed_origins": "*",
	"swagger_host":         "",
}

// Load builds Config from a .env file (if present) and the environment,
// falling back to sensible defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, using process environment")
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.AllowedOrigins = splitOrigins(cfg.AllowedOrigins)
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = defaultDSN(cfg.StoreDriver)
	}
	return &cfg, nil
}

// splitOrigins accepts both a list and a single comma separated value,
// which is how the origins arrive from the environment.
func splitOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, origin := range strings.Split(item, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}

func defaultDSN(driver string) string {
	switch driver {
	case DriverMySQL:
		return "user:password@tcp(localhost:3306)/ticket_app?charset=utf8mb4&parseTime=True&loc=Local"
	case DriverPostgres:
		return "host=localhost user=postgres password=postgres dbname=ticket_app port=5432 sslmode=disable"
	case DriverSQLite:
		return "ticket_app.db"
	default:
		return ""
	}
}
