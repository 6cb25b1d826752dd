package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable read by Load.
	EnvPrefix = "FEIROU"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Checkout     CheckoutConfig
	WhatsApp     WhatsAppConfig
	Catalog      CatalogConfig
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
	Env          string `envconfig:"FEIROU_APP_ENV" required:"true"`
	Port         string `envconfig:"FEIROU_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FEIROU_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FEIROU_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FEIROU_DB_DSN"`
	Driver string `envconfig:"FEIROU_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"FEIROU_DB_HOST"`
	Port     int    `envconfig:"FEIROU_DB_PORT" default:"5432"`
	User     string `envconfig:"FEIROU_DB_USER"`
	Password string `envconfig:"FEIROU_DB_PASSWORD"`
	Name     string `envconfig:"FEIROU_DB_NAME"`
	SSLMode  string `envconfig:"FEIROU_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FEIROU_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FEIROU_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FEIROU_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FEIROU_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FEIROU_REDIS_URL"`
	Address      string        `envconfig:"FEIROU_REDIS_ADDR"`
	Password     string        `envconfig:"FEIROU_REDIS_PASSWORD"`
	DB           int           `envconfig:"FEIROU_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FEIROU_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FEIROU_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FEIROU_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FEIROU_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FEIROU_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CheckoutConfig tunes the checkout session engine. Step labels are
// configuration: the engine only guarantees ordered movement across them.
type CheckoutConfig struct {
	Steps          []string      `envconfig:"FEIROU_CHECKOUT_STEPS" default:"orderSummary,personalInfo,payment,confirmation"`
	SessionTTL     time.Duration `envconfig:"FEIROU_CHECKOUT_SESSION_TTL" default:"24h"`
	CartTTL        time.Duration `envconfig:"FEIROU_CART_TTL" default:"168h"`
	MinNameLength  int           `envconfig:"FEIROU_CHECKOUT_MIN_NAME_LEN" default:"3"`
	MinPhoneDigits int           `envconfig:"FEIROU_CHECKOUT_MIN_PHONE_DIGITS" default:"8"`
}

type WhatsAppConfig struct {
	DefaultCountryCode string `envconfig:"FEIROU_WHATSAPP_COUNTRY_CODE" default:"55"`
}

// CatalogConfig holds the delivery-config defaults used for sellers that
// have no entry of their own, plus the cache TTL for resolved configs.
type CatalogConfig struct {
	DefaultDeliveryFee  string        `envconfig:"FEIROU_CATALOG_DEFAULT_FEE" default:"0"`
	DefaultMinimumOrder string        `envconfig:"FEIROU_CATALOG_DEFAULT_MINIMUM" default:"0"`
	CacheTTL            time.Duration `envconfig:"FEIROU_CATALOG_CACHE_TTL" default:"10m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"FEIROU_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"FEIROU_SQLITE_PATH" default:"feirou.db"`
	AutoMigrate bool   `envconfig:"FEIROU_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	required := map[string]string{
		"FEIROU_DB_HOST": db.Host,
		"FEIROU_DB_USER": db.User,
		"FEIROU_DB_NAME": db.Name,
	}
	for _, env := range []string{"FEIROU_DB_HOST", "FEIROU_DB_USER", "FEIROU_DB_NAME"} {
		if required[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either FEIROU_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
