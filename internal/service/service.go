// Пакет service содержит бизнес-логику загрузки заказов: нормализация,
// определение e-mail покупателя, запись в хранилище и публикация событий
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"order_ingest/internal/interfaces"
	"order_ingest/internal/models"
	"order_ingest/internal/normalize"
)

// Service записывает заказы VTEX в хранилище
type Service struct {
	store     interfaces.OrderStore
	source    interfaces.OrderSource
	resolver  interfaces.EmailResolver
	publisher interfaces.EventPublisher // nil: события не публикуются
	log       *zap.Logger

	mu    sync.RWMutex // Защищает статистику
	stats struct {
		Upserted           int64
		LastUpsertTime     time.Time
		LastUpsertDuration time.Duration
	}
}

// Stats статистика записей сервиса
type Stats struct {
	Upserted           int64         `json:"upserted"`
	LastUpsertTime     time.Time     `json:"last_upsert_time"`
	LastUpsertDuration time.Duration `json:"last_upsert_duration"`
}

// New создает сервис. publisher может быть nil.
func New(store interfaces.OrderStore, source interfaces.OrderSource, resolver interfaces.EmailResolver,
	publisher interfaces.EventPublisher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:     store,
		source:    source,
		resolver:  resolver,
		publisher: publisher,
		log:       log.Named("service"),
	}
}

// UpsertOrder нормализует документ заказа и записывает его вместе со связанными строками.
// Повторная запись того же документа не меняет состояние хранилища.
func (s *Service) UpsertOrder(ctx context.Context, detail *models.OrderDetail) (*models.Order, error) {
	start := time.Now()

	if err := detail.Validate(); err != nil {
		return nil, fmt.Errorf("некорректный документ заказа: %w", err)
	}

	ws := normalize.Normalize(detail)
	if ws.Customer != nil && s.resolver != nil {
		profile := detail.ClientProfileData
		ws.Customer.Email = s.resolver.Resolve(ctx, profile.UserProfileID, profile.Email)
	}

	saved, err := s.store.SaveOrder(ctx, ws)
	if err != nil {
		return nil, fmt.Errorf("запись заказа %s: %w", detail.OrderID, err)
	}

	if s.publisher != nil {
		// Сбой публикации не отменяет запись
		if err := s.publisher.PublishOrderIngested(ctx, saved); err != nil {
			s.log.Warn("Не удалось опубликовать событие о заказе",
				zap.String("order_id", saved.VtexOrderID), zap.Error(err))
		}
	}

	s.mu.Lock()
	s.stats.Upserted++
	s.stats.LastUpsertTime = time.Now()
	s.stats.LastUpsertDuration = time.Since(start)
	s.mu.Unlock()

	s.log.Debug("Заказ записан",
		zap.String("order_id", saved.VtexOrderID),
		zap.Int("items", len(ws.Items)),
		zap.Duration("duration", time.Since(start)))
	return saved, nil
}

// ProcessOrderID загружает документ заказа из VTEX и записывает его
func (s *Service) ProcessOrderID(ctx context.Context, vtexOrderID string) (*models.Order, error) {
	if vtexOrderID == "" {
		return nil, errors.New("пустой идентификатор заказа")
	}
	detail, err := s.source.GetOrder(ctx, vtexOrderID)
	if err != nil {
		return nil, fmt.Errorf("загрузка заказа %s: %w", vtexOrderID, err)
	}
	return s.UpsertOrder(ctx, detail)
}

// Stats возвращает статистику записей
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Upserted:           s.stats.Upserted,
		LastUpsertTime:     s.stats.LastUpsertTime,
		LastUpsertDuration: s.stats.LastUpsertDuration,
	}
}

var _ interfaces.OrderProcessor = (*Service)(nil)
