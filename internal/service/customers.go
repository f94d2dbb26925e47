package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"order_ingest/internal/interfaces"
)

// MaskedEmailSuffix суффикс замаскированных e-mail маркетплейсов VTEX
const MaskedEmailSuffix = ".ct.vtex.com.br"

// SyncConcurrency число параллельных запросов к Masterdata при синхронизации
const SyncConcurrency = 5

var maskedEmail = regexp.MustCompile(`(?i)^([^\s-]+@[^\s-]+)-.+\.ct\.vtex\.com\.br$`)

// CustomerService обслуживание записей покупателей
type CustomerService struct {
	store    interfaces.CustomerStore
	resolver interfaces.EmailResolver
	log      *zap.Logger
	now      func() time.Time
}

// NewCustomerService создает сервис покупателей
func NewCustomerService(store interfaces.CustomerStore, resolver interfaces.EmailResolver, log *zap.Logger) *CustomerService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CustomerService{
		store:    store,
		resolver: resolver,
		log:      log.Named("customers"),
		now:      time.Now,
	}
}

// SyncStats итог синхронизации e-mail
type SyncStats struct {
	Total   int
	Updated int
	Skipped int
	Failed  int
}

// SyncMaskedEmails заменяет замаскированные e-mail покупателей на e-mail из Masterdata.
// limit <= 0: все покупатели.
func (c *CustomerService) SyncMaskedEmails(ctx context.Context, limit int) (SyncStats, error) {
	customers, err := c.store.ListMaskedCustomers(ctx, MaskedEmailSuffix, true, limit)
	if err != nil {
		return SyncStats{}, err
	}

	var (
		mu    sync.Mutex
		stats = SyncStats{Total: len(customers)}
	)
	count := func(f func(*SyncStats)) {
		mu.Lock()
		f(&stats)
		mu.Unlock()
	}

	g := &errgroup.Group{}
	g.SetLimit(SyncConcurrency)
	for _, cust := range customers {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if cust.VtexCustomerID == nil || cust.Email == nil {
				count(func(s *SyncStats) { s.Skipped++ })
				return nil
			}
			resolved := c.resolver.Resolve(ctx, *cust.VtexCustomerID, "")
			if resolved == nil || strings.EqualFold(*resolved, *cust.Email) {
				count(func(s *SyncStats) { s.Skipped++ })
				return nil
			}

			err := c.store.UpdateCustomerEmail(ctx, cust.ID, *resolved)
			switch {
			case errors.Is(err, interfaces.ErrEmailConflict):
				count(func(s *SyncStats) { s.Failed++ })
				c.log.Warn("E-mail уже принадлежит другому покупателю, пропуск",
					zap.String("customer_id", cust.ID))
			case err != nil:
				count(func(s *SyncStats) { s.Failed++ })
				c.log.Warn("Не удалось обновить покупателя",
					zap.String("customer_id", cust.ID), zap.Error(err))
			default:
				count(func(s *SyncStats) { s.Updated++ })
			}
			return nil
		})
	}
	_ = g.Wait()

	c.log.Info("Синхронизация e-mail завершена",
		zap.Int("total", stats.Total),
		zap.Int("updated", stats.Updated),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed))
	return stats, ctx.Err()
}

// MaskedEmailItem строка выгрузки замаскированных e-mail
type MaskedEmailItem struct {
	ID             string  `json:"id"`
	MaskedEmail    string  `json:"maskedEmail"`
	CandidateEmail *string `json:"candidateEmail"`
}

// MaskedEmailExport документ выгрузки
type MaskedEmailExport struct {
	Total       int               `json:"total"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Items       []MaskedEmailItem `json:"items"`
}

// ExportMaskedEmails пишет в w JSON со всеми покупателями с замаскированным e-mail
// и адресом-кандидатом, извлеченным из маски
func (c *CustomerService) ExportMaskedEmails(ctx context.Context, w io.Writer) (int, error) {
	customers, err := c.store.ListMaskedCustomers(ctx, MaskedEmailSuffix, false, 0)
	if err != nil {
		return 0, err
	}

	doc := MaskedEmailExport{
		GeneratedAt: c.now().UTC(),
		Items:       make([]MaskedEmailItem, 0, len(customers)),
	}
	for _, cust := range customers {
		if cust.Email == nil {
			continue
		}
		doc.Items = append(doc.Items, MaskedEmailItem{
			ID:             cust.ID,
			MaskedEmail:    *cust.Email,
			CandidateEmail: CandidateEmail(*cust.Email),
		})
	}
	doc.Total = len(doc.Items)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("запись выгрузки: %w", err)
	}
	return doc.Total, nil
}

// CandidateEmail извлекает исходный адрес из замаскированного вида
// "local@domain-<hash>.ct.vtex.com.br". nil, если адрес не замаскирован.
func CandidateEmail(masked string) *string {
	m := maskedEmail.FindStringSubmatch(masked)
	if m == nil {
		return nil
	}
	return &m[1]
}
