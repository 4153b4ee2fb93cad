package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.HTTPPort)
	assert.Equal(t, 5001, cfg.NotifierHTTPPort)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.True(t, cfg.SeedCatalog)
	assert.Equal(t, NotifyInline, cfg.NotifyMode)
	assert.Equal(t, TransportLog, cfg.EmailTransport)
	assert.Equal(t, "jainfoamf@gmail.com", cfg.ContactEmail)
	assert.Equal(t, "Jain Foam & Furnishing", cfg.SenderName)
	assert.Equal(t, "furnishing.inquiry.submitted", cfg.KafkaInquiryTopic)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CATALOG_CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "30s", cfg.CatalogCacheTTL.String())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HTTPPort:         5000,
			NotifierHTTPPort: 5001,
			StoreDriver:      StoreMemory,
			NotifyMode:       NotifyInline,
			NotifyWorkers:    1,
			EmailTransport:   TransportLog,
			ContactEmail:     "owner@example.com",
			OTELSampleRate:   1,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.HTTPPort = 0 }, "invalid PORT"},
		{"bad notifier port", func(c *Config) { c.NotifierHTTPPort = 70000 }, "invalid NOTIFIER_PORT"},
		{"notifier port clashes", func(c *Config) { c.NotifierHTTPPort = c.HTTPPort }, "NOTIFIER_PORT must differ"},
		{"bad driver", func(c *Config) { c.StoreDriver = "sqlite" }, "STORE_DRIVER"},
		{"postgres without host", func(c *Config) { c.StoreDriver = StorePostgres; c.PostgresUser = "u" }, "POSTGRES_HOST"},
		{"bad mode", func(c *Config) { c.NotifyMode = "sms" }, "NOTIFY_MODE"},
		{"kafka without brokers", func(c *Config) { c.NotifyMode = NotifyKafka }, "KAFKA_BROKERS"},
		{"zero workers", func(c *Config) { c.NotifyWorkers = 0 }, "NOTIFY_WORKERS"},
		{"brevo without key", func(c *Config) { c.EmailTransport = TransportBrevo }, "BREVO_API_KEY"},
		{"smtp without host", func(c *Config) { c.EmailTransport = TransportSMTP }, "SMTP_HOST"},
		{"bad transport", func(c *Config) { c.EmailTransport = "fax" }, "EMAIL_TRANSPORT"},
		{"no recipient", func(c *Config) { c.ContactEmail = "" }, "CONTACT_EMAIL"},
		{"bad sample rate", func(c *Config) { c.OTELSampleRate = 1.5 }, "OTEL_SAMPLE_RATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}
