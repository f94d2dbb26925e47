package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию, считанную из переменных окружения
type Config struct {
	// VTEX
	VTEXAccount    string        `envconfig:"VTEX_ACCOUNT" validate:"required"`
	VTEXAppKey     string        `envconfig:"VTEXAPPKEY" validate:"required"`
	VTEXAppToken   string        `envconfig:"VTEXTOKEN" validate:"required"`
	VTEXBaseDomain string        `envconfig:"VTEX_BASE_DOMAIN" default:"vtexcommercestable.com.br"`
	VTEXBaseURL    string        `envconfig:"VTEX_BASE_URL"` // Полный URL вместо https://{account}.{domain}
	Concurrency    int           `envconfig:"VTEX_CONCURRENCY" default:"5" validate:"min=1"`
	PerPage        int           `envconfig:"VTEX_PER_PAGE" default:"50" validate:"min=1"`
	RequestTimeout time.Duration `envconfig:"VTEX_TIMEOUT" default:"30s"`

	// Кэш профилей Masterdata; 0: на время работы команды
	MasterdataCacheTTL time.Duration `envconfig:"MASTERDATA_CACHE_TTL" default:"0s" validate:"min=0"`

	// Загрузка
	IngestDays   int    `envconfig:"INGEST_DAYS" default:"30" validate:"min=1"`
	SalesChannel string `envconfig:"SALES_CHANNEL" default:"1" validate:"required"`

	// Очередь
	QueueBatch       int `envconfig:"QUEUE_BATCH" default:"50" validate:"min=1"`
	QueueMaxAttempts int `envconfig:"QUEUE_MAX_ATTEMPTS" default:"3" validate:"min=1"`

	// Хранилище и HTTP
	PostgresDSN    string `envconfig:"POSTGRES_DSN" default:"host=localhost port=5432 user=postgres password=postgres dbname=orders sslmode=disable"`
	ServerAddr     string `envconfig:"SERVER_ADDR" default:":3000"`
	ReportTimezone string `envconfig:"REPORT_TIMEZONE" default:"America/Sao_Paulo"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// Kafka (необязательно: пустой список брокеров отключает события)
	KafkaBrokers     []string `envconfig:"KAFKA_BROKERS"`
	KafkaEventsTopic string   `envconfig:"KAFKA_EVENTS_TOPIC" default:"orders.ingested"`
	KafkaDLQTopic    string   `envconfig:"KAFKA_DLQ_TOPIC" default:"orders.queue.dlq"`
	KafkaReplayTopic string   `envconfig:"KAFKA_REPLAY_TOPIC" default:"orders.replay"`
	KafkaGroupID     string   `envconfig:"KAFKA_GROUP_ID" default:"order-ingest-group"`
}

// Поля, обязательные только для команд, обращающихся к VTEX
var vtexFields = []string{"VTEXAccount", "VTEXAppKey", "VTEXAppToken"}

// LoadFromEnv загружает конфигурацию из переменных окружения
func LoadFromEnv() (*Config, error) {
	// Автозагрузка .env, если файл есть в рабочей директории
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.KafkaBrokers = cleanList(cfg.KafkaBrokers)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate проверяет все поля, кроме учетных данных VTEX
func (c *Config) validate() error {
	v := validator.New()
	if err := v.StructExcept(c, vtexFields...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := time.LoadLocation(c.ReportTimezone); err != nil {
		return fmt.Errorf("REPORT_TIMEZONE is not a valid IANA zone: %w", err)
	}
	if len(c.KafkaBrokers) > 0 && strings.TrimSpace(c.KafkaGroupID) == "" {
		return fmt.Errorf("KAFKA_GROUP_ID must not be empty when KAFKA_BROKERS is set")
	}
	return nil
}

// RequireVTEX проверяет наличие учетных данных VTEX
func (c *Config) RequireVTEX() error {
	v := validator.New()
	if err := v.StructPartial(c, vtexFields...); err != nil {
		return fmt.Errorf("VTEX_ACCOUNT, VTEXAPPKEY and VTEXTOKEN must be set: %w", err)
	}
	return nil
}

// KafkaEnabled сообщает, настроена ли Kafka
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// EffectivePerPage размер страницы списка заказов, не более 100
func (c *Config) EffectivePerPage() int {
	if c.PerPage > 100 {
		return 100
	}
	return c.PerPage
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
