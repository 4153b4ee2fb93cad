package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/VivekRai08/Jain-Foam-website/pkg/config"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Notification modes.
const (
	NotifyInline = "inline"
	NotifyKafka  = "kafka"
	NotifyOff    = "off"
)

// Email transports.
const (
	TransportBrevo = "brevo"
	TransportSMTP  = "smtp"
	TransportLog   = "log"
)

// Config holds all configuration for the site backend and the notifier.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`

	// HTTP server
	HTTPPort         int `env:"PORT" envDefault:"5000"`
	// NotifierHTTPPort serves the notifier's health and metrics endpoints.
	NotifierHTTPPort int `env:"NOTIFIER_PORT" envDefault:"5001"`

	// Store
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`
	SeedCatalog bool   `env:"SEED_CATALOG" envDefault:"true"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"jainfoam"`
	PostgresPass string `env:"POSTGRES_PASSWORD"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"jainfoam"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	DBMaxConns           int32 `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns           int32 `env:"DB_MIN_CONNS" envDefault:"2"`
	SlowQueryThresholdMs int   `env:"LOG_SLOW_QUERY_MS" envDefault:"500"`

	// Redis catalog cache
	RedisEnabled    bool          `env:"REDIS_ENABLED" envDefault:"false"`
	RedisHost       string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort       int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`
	CatalogMaxAge   int           `env:"CATALOG_MAX_AGE" envDefault:"60"`

	// Notifications
	NotifyMode        string        `env:"NOTIFY_MODE" envDefault:"inline"`
	NotifyWorkers     int           `env:"NOTIFY_WORKERS" envDefault:"4"`
	NotifyQueueSize   int           `env:"NOTIFY_QUEUE_SIZE" envDefault:"100"`
	NotifySendTimeout time.Duration `env:"NOTIFY_SEND_TIMEOUT" envDefault:"15s"`

	EmailTransport string `env:"EMAIL_TRANSPORT" envDefault:"log"`
	BrevoAPIKey    string `env:"BREVO_API_KEY"`
	BrevoAPIURL    string `env:"BREVO_API_URL" envDefault:"https://api.brevo.com/v3/smtp/email"`
	SenderName     string `env:"SENDER_NAME" envDefault:"Jain Foam & Furnishing"`
	SenderEmail    string `env:"SENDER_EMAIL" envDefault:"jainfoamf@gmail.com"`
	ContactEmail   string `env:"CONTACT_EMAIL" envDefault:"jainfoamf@gmail.com"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	// Kafka
	KafkaBrokers       []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	KafkaInquiryTopic  string   `env:"KAFKA_INQUIRY_TOPIC" envDefault:"furnishing.inquiry.submitted"`
	KafkaConsumerGroup string   `env:"KAFKA_CONSUMER_GROUP" envDefault:"furnishing-notifier"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofEnabled      bool     `env:"PPROF_ENABLED" envDefault:"false"`
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"10.0.0.0/8,172.16.0.0/12,192.168.0.0/16,127.0.0.0/8,::1/128" envSeparator:","`
}

// Load reads .env (when present) and the environment, then validates.
func Load() (*Config, error) {
	if err := pkgconfig.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges, enums and transport credentials.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.HTTPPort)
	}
	if c.NotifierHTTPPort < 1 || c.NotifierHTTPPort > 65535 {
		return fmt.Errorf("invalid NOTIFIER_PORT: %d", c.NotifierHTTPPort)
	}
	if c.NotifierHTTPPort == c.HTTPPort {
		return fmt.Errorf("NOTIFIER_PORT must differ from PORT (%d)", c.HTTPPort)
	}

	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if c.PostgresHost == "" {
			return fmt.Errorf("POSTGRES_HOST is required")
		}
		if c.PostgresUser == "" {
			return fmt.Errorf("POSTGRES_USER is required")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMemory, StorePostgres, c.StoreDriver)
	}

	switch c.NotifyMode {
	case NotifyInline, NotifyOff:
	case NotifyKafka:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required when NOTIFY_MODE=kafka")
		}
	default:
		return fmt.Errorf("NOTIFY_MODE must be one of inline, kafka, off, got %q", c.NotifyMode)
	}
	if c.NotifyWorkers < 1 {
		return fmt.Errorf("NOTIFY_WORKERS must be positive, got %d", c.NotifyWorkers)
	}
	if c.NotifyQueueSize < 0 {
		return fmt.Errorf("NOTIFY_QUEUE_SIZE must not be negative, got %d", c.NotifyQueueSize)
	}

	switch c.EmailTransport {
	case TransportLog:
	case TransportBrevo:
		if c.BrevoAPIKey == "" {
			return fmt.Errorf("BREVO_API_KEY is required when EMAIL_TRANSPORT=brevo")
		}
	case TransportSMTP:
		if c.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required when EMAIL_TRANSPORT=smtp")
		}
	default:
		return fmt.Errorf("EMAIL_TRANSPORT must be one of brevo, smtp, log, got %q", c.EmailTransport)
	}
	if c.ContactEmail == "" {
		return fmt.Errorf("CONTACT_EMAIL is required")
	}

	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	return nil
}

// IsProduction reports whether ENVIRONMENT is "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
