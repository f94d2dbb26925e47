// Package app собирает общие зависимости команд: конфигурацию, логгер,
// подключение к БД, клиента VTEX и Kafka
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"order_ingest/internal/config"
	"order_ingest/internal/database"
	"order_ingest/internal/interfaces"
	"order_ingest/internal/kafka"
	"order_ingest/internal/logger"
	"order_ingest/internal/masterdata"
	"order_ingest/internal/service"
	"order_ingest/internal/vtex"
)

// Options что нужно команде помимо БД
type Options struct {
	VTEX  bool // Учетные данные VTEX обязательны
	Kafka bool // Поднять продюсеры, если Kafka настроена
}

// App зависимости одной команды
type App struct {
	Config    *config.Config
	Log       *zap.Logger
	DB        *database.Postgres
	VTEX      *vtex.Client // nil без Options.VTEX
	Publisher interfaces.EventPublisher
	DLQ       interfaces.DeadLetterSink
}

// Setup загружает конфигурацию и открывает ресурсы
func Setup(ctx context.Context, name string, opts Options) (*App, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	if opts.VTEX {
		if err := cfg.RequireVTEX(); err != nil {
			return nil, err
		}
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log = log.Named(name)

	a := &App{
		Config:    cfg,
		Log:       log,
		Publisher: kafka.NoopPublisher{},
		DLQ:       kafka.NoopDeadLetter{},
	}

	log.Info("Подключение к БД...")
	db, err := database.NewPostgres(ctx, cfg.PostgresDSN, log)
	if err != nil {
		return nil, fmt.Errorf("подключение к БД: %w", err)
	}
	a.DB = db
	if err := db.Init(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("инициализация БД: %w", err)
	}

	if opts.VTEX {
		client, err := vtex.NewClient(vtex.Options{
			Account:    cfg.VTEXAccount,
			AppKey:     cfg.VTEXAppKey,
			AppToken:   cfg.VTEXAppToken,
			BaseDomain: cfg.VTEXBaseDomain,
			BaseURL:    cfg.VTEXBaseURL,
			Timeout:    cfg.RequestTimeout,
		}, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.VTEX = client
	}

	if opts.Kafka && cfg.KafkaEnabled() {
		log.Info("Kafka включена", zap.Strings("brokers", cfg.KafkaBrokers))
		a.Publisher = kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaEventsTopic, log)
		a.DLQ = kafka.NewDLQProducer(cfg.KafkaBrokers, cfg.KafkaDLQTopic)
	}
	return a, nil
}

// OrderService сервис записи заказов поверх VTEX и БД
func (a *App) OrderService() *service.Service {
	resolver := masterdata.NewResolver(a.VTEX, a.Config.MasterdataCacheTTL, a.Log)
	return service.New(a.DB, a.VTEX, resolver, a.Publisher, a.Log)
}

// Close освобождает ресурсы
func (a *App) Close() {
	if err := a.Publisher.Close(); err != nil {
		a.Log.Warn("Ошибка закрытия Kafka producer", zap.Error(err))
	}
	if err := a.DLQ.Close(); err != nil {
		a.Log.Warn("Ошибка закрытия DLQ producer", zap.Error(err))
	}
	if a.DB != nil {
		a.DB.Close()
	}
	_ = a.Log.Sync()
}

// Run выполняет команду до завершения или сигнала SIGINT/SIGTERM
// и завершает процесс с кодом 0 или 1
func Run(name string, opts Options, fn func(ctx context.Context, a *App) error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, name, opts, fn)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, name string, opts Options, fn func(ctx context.Context, a *App) error) int {
	a, err := Setup(ctx, name, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return 1
	}
	defer a.Close()

	if err := fn(ctx, a); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			a.Log.Warn("Остановлено по сигналу")
		} else {
			a.Log.Error("Команда завершилась с ошибкой", zap.Error(err))
		}
		return 1
	}
	return 0
}
