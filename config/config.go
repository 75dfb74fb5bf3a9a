package config

import (
	"errors"
	"fmt"
	"roomly/shared/constant"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// PostgresNode is one endpoint of the read/write split.
type PostgresNode struct {
	Host     string `envconfig:"HOST"     default:"localhost"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"roomly"`
		Timezone string `envconfig:"TIMEZONE" default:"Asia/Ho_Chi_Minh"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"100"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
		} `envconfig:"RATE_LIMITER"`
		Metrics struct {
			Enable bool   `envconfig:"ENABLE"`
			Route  string `envconfig:"ROUTE" default:"/metrics"`
		} `envconfig:"METRICS"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Booking struct {
		Timezone string `envconfig:"TIMEZONE" default:"Asia/Ho_Chi_Minh"`
	} `envconfig:"BOOKING"`

	Kafka struct {
		Enable  bool     `envconfig:"ENABLE"`
		Brokers []string `envconfig:"BROKERS"`
		SASL    struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topic struct {
			Booking string `envconfig:"BOOKING" default:"booking.events"`
		} `envconfig:"TOPIC"`
	} `envconfig:"KAFKA"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST" default:"localhost"`
				Port     string `envconfig:"PORT" default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"15"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int          `envconfig:"MAX_RETRY"       default:"3"`
			RetryWaitTime  int          `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string       `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool         `envconfig:"AUTO_MIGRATE"`
			Prefix         string       `envconfig:"PREFIX"`
			Read           PostgresNode `envconfig:"READ"`
			Write          PostgresNode `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

var (
	errMissingJWTSecret = errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	errRateLimitWindow  = errors.New("APP_RATE_LIMITER_MAX_REQUESTS and APP_RATE_LIMITER_WINDOW_SECONDS must be positive")
	errKafkaBrokers     = errors.New("KAFKA_BROKERS is required when KAFKA_ENABLE is set")
)

func (c *Config) IsProduction() bool {
	return c.Server.Env == constant.ServerEnvProduction
}

// Validate reports settings the service cannot run correctly without.
func (c *Config) Validate() error {
	var errs []error

	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		errs = append(errs, errMissingJWTSecret)
	}

	if c.App.RateLimiter.Enable && (c.App.RateLimiter.MaxRequests <= 0 || c.App.RateLimiter.WindowSeconds <= 0) {
		errs = append(errs, errRateLimitWindow)
	}

	if c.Kafka.Enable && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errKafkaBrokers)
	}

	return errors.Join(errs...)
}

// Load reads the environment into a fresh Config. Defaults fill unset keys.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	return &cfg, nil
}

var (
	conf    *Config
	once    sync.Once
	initErr error
)

// Init loads .env when present, then the environment. Validation failures are
// fatal in production and logged elsewhere.
func Init() error {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		conf, initErr = Load()
		if initErr != nil {
			return
		}

		if err := conf.Validate(); err != nil {
			if conf.IsProduction() {
				initErr = err

				return
			}

			log.Warn().Err(err).Msg("Configuration is incomplete")
		}

		log.Info().Str("env", conf.Server.Env).Msg("Service configuration initialized successfully")
	})

	return initErr
}

func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize configuration")
	}

	return conf
}
