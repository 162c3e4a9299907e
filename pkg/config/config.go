package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Cache        CacheConfig
	Export       ExportConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	// The flag overrides EPC_DB_DRIVER.
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"EPC_APP_ENV" required:"true"`
	Port         string   `envconfig:"EPC_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"EPC_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"EPC_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"EPC_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"EPC_DB_DSN"`
	Driver string `envconfig:"EPC_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"EPC_DB_HOST"`
	LegacyPort     int    `envconfig:"EPC_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"EPC_DB_USER"`
	LegacyPassword string `envconfig:"EPC_DB_PASSWORD"`
	LegacyName     string `envconfig:"EPC_DB_NAME"`
	LegacySSLMode  string `envconfig:"EPC_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"EPC_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"EPC_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"EPC_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"EPC_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the service runs against a local sqlite file
// instead of Postgres. Used for local tooling only; migrations assume Postgres.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"EPC_REDIS_URL" required:"true"`
	Address      string        `envconfig:"EPC_REDIS_ADDR"`
	Password     string        `envconfig:"EPC_REDIS_PASSWORD"`
	DB           int           `envconfig:"EPC_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"EPC_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"EPC_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"EPC_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"EPC_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"EPC_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret string `envconfig:"EPC_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"EPC_JWT_ISSUER" required:"true"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"EPC_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"EPC_AUTO_MIGRATE" default:"false"`
}

type CacheConfig struct {
	LookupTTL time.Duration `envconfig:"EPC_CACHE_LOOKUP_TTL" default:"5m"`
}

type ExportConfig struct {
	SourceWarehouse string `envconfig:"EPC_EXPORT_SOURCE_WAREHOUSE" default:"01-RLS"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
