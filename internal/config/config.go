package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig
	Data     DataConfig
	Geocode  GeocodeConfig
	Redis    RedisConfig
	Database DatabaseConfig
	SQLite   SQLiteConfig
	Auth     AuthConfig
	Scraper  ScraperConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DataConfig struct {
	Directory  string
	GeoEnabled bool
	Schedule   string
}

type GeocodeConfig struct {
	AccessKey string
	BaseURL   string
	Country   string
	Workers   int
	RPS       int
}

type RedisConfig struct {
	URL string
	TTL time.Duration
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

// Enabled reports whether enough is configured to open a connection.
func (d DatabaseConfig) Enabled() bool {
	return d.DBHost != "" && d.DBName != ""
}

type SQLiteConfig struct {
	Path string
}

type AuthConfig struct {
	AdminUsername     string
	JWTSecret         string
	AccessTTL         time.Duration
	AdminPasswordHash string
}

type ScraperConfig struct {
	BaseURL  string
	Keywords []string
	Pages    int
	Workers  int
	Email    string
	Password string
}

var errMissingRequiredEnv = errors.New("missing required env")

// Load reads .env, then the YAML file named by CONFIG_FILE, then the process
// environment. Later sources win.
func Load() (Config, error) {
	_ = godotenv.Load()

	file, err := readFile(strings.TrimSpace(os.Getenv("CONFIG_FILE")))
	if err != nil {
		return Config{}, err
	}
	return load(file)
}

// readFile parses a flat YAML mapping of environment keys to values.
func readFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	raw := map[string]any{}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
		case []any:
			parts := make([]string, 0, len(t))
			for _, p := range t {
				parts = append(parts, fmt.Sprint(p))
			}
			out[strings.ToUpper(k)] = strings.Join(parts, ",")
		default:
			out[strings.ToUpper(k)] = fmt.Sprint(t)
		}
	}
	return out, nil
}

func load(file map[string]string) (Config, error) {
	cfg := Config{}

	var invalid []string
	opt := func(key, def string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		if v := strings.TrimSpace(file[key]); v != "" {
			return v
		}
		return def
	}
	optInt := func(key string, def int) int {
		v := opt(key, "")
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			invalid = append(invalid, key)
			return def
		}
		return n
	}
	optBool := func(key string) bool {
		v := opt(key, "")
		if v == "" {
			return false
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalid = append(invalid, key)
		}
		return b
	}
	optSeconds := func(key string, def int) time.Duration {
		return time.Duration(optInt(key, def)) * time.Second
	}
	optList := func(key, def string) []string {
		var out []string
		for _, p := range strings.Split(opt(key, def), ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "jobad-insights"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    opt("APP_PORT", "8080"),
	}

	cfg.Data = DataConfig{
		Directory:  opt("DATA_DIR", "data"),
		GeoEnabled: optBool("GEOCODE_ENABLED"),
		Schedule:   opt("PIPELINE_SCHEDULE", ""),
	}

	cfg.Geocode = GeocodeConfig{
		AccessKey: opt("POSITIONSTACK_ACCESS_KEY", ""),
		BaseURL:   opt("POSITIONSTACK_BASE_URL", ""),
		Country:   opt("GEOCODE_COUNTRY", "DE"),
		Workers:   optInt("GEOCODE_WORKERS", 8),
		RPS:       optInt("GEOCODE_RPS", 10),
	}

	cfg.Redis = RedisConfig{
		URL: opt("REDIS_URL", ""),
		TTL: optSeconds("REDIS_TTL", 600),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST", ""),
		DBPort:                opt("DB_PORT", "5432"),
		DBName:                opt("DB_NAME", ""),
		DBUser:                opt("DB_USER", ""),
		DBPassword:            opt("DB_PASSWORD", ""),
		DBSSLMode:             opt("DB_SSLMODE", "disable"),
		ConnectTimeout:        optSeconds("DB_CONNECT_TIMEOUT", 5),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optSeconds("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optSeconds("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optSeconds("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}

	cfg.SQLite = SQLiteConfig{Path: opt("SQLITE_PATH", "")}

	cfg.Auth = AuthConfig{
		AdminUsername:     opt("ADMIN_USERNAME", "admin"),
		JWTSecret:         opt("JWT_SECRET", ""),
		AccessTTL:         optSeconds("JWT_ACCESS_TTL", 900),
		AdminPasswordHash: opt("ADMIN_PASSWORD_HASH", ""),
	}

	cfg.Scraper = ScraperConfig{
		BaseURL:  opt("STEPSTONE_BASE_URL", "https://www.stepstone.de"),
		Keywords: optList("SCRAPER_KEYWORDS", "data-scientist,data-analyst,data-engineer,machine-learning"),
		Pages:    optInt("SCRAPER_PAGES", 5),
		Workers:  optInt("SCRAPER_WORKERS", 4),
		Email:    opt("STEPSTONE_EMAIL", ""),
		Password: opt("STEPSTONE_PASSWORD", ""),
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid env values: %s", strings.Join(invalid, ", "))
	}
	return cfg, nil
}

// RequireServer checks the keys the HTTP server cannot start without.
func (c Config) RequireServer() error {
	var missing []string
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.Auth.AdminPasswordHash == "" {
		missing = append(missing, "ADMIN_PASSWORD_HASH")
	}
	return missingErr(missing)
}

// RequireGeocoding checks the keys a geocoding run needs.
func (c Config) RequireGeocoding() error {
	var missing []string
	if c.Geocode.AccessKey == "" {
		missing = append(missing, "POSITIONSTACK_ACCESS_KEY")
	}
	return missingErr(missing)
}

func missingErr(missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
}
