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
	Storefront   StorefrontConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VITRINA_APP_ENV" required:"true"`
	Port         string `envconfig:"VITRINA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VITRINA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VITRINA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VITRINA_DB_DSN"`
	Driver string `envconfig:"VITRINA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VITRINA_DB_HOST"`
	LegacyPort     int    `envconfig:"VITRINA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VITRINA_DB_USER"`
	LegacyPassword string `envconfig:"VITRINA_DB_PASSWORD"`
	LegacyName     string `envconfig:"VITRINA_DB_NAME"`
	LegacySSLMode  string `envconfig:"VITRINA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VITRINA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VITRINA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VITRINA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VITRINA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VITRINA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"VITRINA_REDIS_ADDR"`
	Password     string        `envconfig:"VITRINA_REDIS_PASSWORD"`
	DB           int           `envconfig:"VITRINA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VITRINA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VITRINA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VITRINA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VITRINA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VITRINA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// StorefrontConfig carries pricing and checkout-session settings.
type StorefrontConfig struct {
	// LocalRegions lists the regions whose registered addresses qualify for
	// local pricing. Comma separated, matched case-insensitively.
	LocalRegions      []string      `envconfig:"VITRINA_LOCAL_REGIONS" default:"Asunción,Central"`
	CouponSessionTTL  time.Duration `envconfig:"VITRINA_COUPON_SESSION_TTL" default:"24h"`
	ComboFetchTimeout time.Duration `envconfig:"VITRINA_COMBO_FETCH_TIMEOUT" default:"5s"`
}

// IsLocalRegion reports whether the region qualifies for local pricing.
func (s StorefrontConfig) IsLocalRegion(region string) bool {
	region = strings.TrimSpace(region)
	for _, candidate := range s.LocalRegions {
		if strings.EqualFold(strings.TrimSpace(candidate), region) {
			return true
		}
	}
	return false
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VITRINA_AUTO_MIGRATE" default:"false"`
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
