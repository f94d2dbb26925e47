// Основной пакет сервера отчетов по заказам
package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"order_ingest/internal/app"
	"order_ingest/internal/handler"
	"order_ingest/internal/kafka"
)

func main() {
	app.Run("server", app.Options{}, serve)
}

func serve(ctx context.Context, a *app.App) error {
	cfg := a.Config

	loc, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		return err
	}

	// Kafka consumer запросов на повторную загрузку
	consumerCtx, cancelConsumer := context.WithCancel(ctx)
	defer cancelConsumer()
	consumerDone := make(chan struct{})
	if cfg.KafkaEnabled() {
		consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaReplayTopic, cfg.KafkaGroupID, a.DB, a.Log)
		defer consumer.Close()

		go func() {
			defer close(consumerDone)
			a.Log.Info("Начало работы Kafka consumer", zap.String("topic", cfg.KafkaReplayTopic))
			if err := consumer.Consume(consumerCtx); err != nil {
				// Неподтвержденный запрос будет прочитан заново после перезапуска
				a.Log.Error("Kafka consumer остановлен", zap.Error(err))
			}
		}()
	} else {
		close(consumerDone)
	}

	gin.SetMode(gin.ReleaseMode)
	h := handler.New(a.DB, loc, cfg.SalesChannel, a.Log)
	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.Log.Info("Сервер запущен", zap.String("addr", cfg.ServerAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	a.Log.Info("Остановка сервера")

	// Graceful shutdown с таймаутом 30 секунд
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.Log.Error("Ошибка остановки сервера", zap.Error(err))
	}
	cancelConsumer()

	select {
	case <-consumerDone:
	case <-time.After(10 * time.Second):
		a.Log.Warn("Таймаут ожидания остановки consumer")
	}
	a.Log.Info("Сервер остановлен успешно")
	return nil
}
