// Package masterdata определяет настоящий e-mail покупателя по профилю Masterdata
package masterdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"order_ingest/internal/cache"
	"order_ingest/internal/interfaces"
)

// Resolver ищет e-mail по userProfileId. Результаты кэшируются на время жизни экземпляра
// или на cacheTTL, если он задан.
type Resolver struct {
	source interfaces.ProfileSource
	cache  *cache.Cache
	group  singleflight.Group
	log    *zap.Logger
}

// NewResolver создает резолвер с собственным кэшем. cacheTTL == 0: без истечения.
func NewResolver(source interfaces.ProfileSource, cacheTTL time.Duration, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		source: source,
		cache:  cache.New(cacheTTL),
		log:    log.Named("masterdata"),
	}
}

func userKey(userID string) string { return "userId:" + userID }
func emailKey(email string) string { return "email:" + email }

// Resolve возвращает e-mail профиля, иначе fallbackEmail, иначе nil.
// Ошибки поиска логируются и не возвращаются.
func (r *Resolver) Resolve(ctx context.Context, userID, fallbackEmail string) *string {
	userID = strings.TrimSpace(userID)
	fallbackEmail = strings.TrimSpace(fallbackEmail)

	if userID == "" {
		return orNil(fallbackEmail)
	}

	if email, ok := r.cache.Get(userKey(userID)); ok {
		return withFallback(email, fallbackEmail)
	}

	v, _, _ := r.group.Do(userKey(userID), func() (interface{}, error) {
		if email, ok := r.cache.Get(userKey(userID)); ok {
			return email, nil
		}
		email := r.lookup(ctx, userID, fallbackEmail)
		if ctx.Err() == nil {
			r.cache.Set(userKey(userID), email)
		}
		return email, nil
	})

	email, _ := v.(*string)
	return withFallback(email, fallbackEmail)
}

// lookup последовательно ищет профиль по userId, id и e-mail
func (r *Resolver) lookup(ctx context.Context, userID, fallbackEmail string) *string {
	for _, where := range []string{"userId=" + userID, "id=" + userID} {
		email, err := r.search(ctx, where)
		if err != nil {
			r.log.Warn("Ошибка поиска профиля в Masterdata",
				zap.String("user_id", userID), zap.Error(err))
			return nil
		}
		if email != nil {
			return email
		}
	}

	if fallbackEmail == "" {
		return nil
	}
	if email, ok := r.cache.Get(emailKey(fallbackEmail)); ok {
		return email
	}
	email, err := r.search(ctx, "email="+fallbackEmail)
	if err != nil {
		r.log.Warn("Ошибка поиска профиля по e-mail в Masterdata",
			zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	r.cache.Set(emailKey(fallbackEmail), email)
	return email
}

func (r *Resolver) search(ctx context.Context, where string) (*string, error) {
	profiles, err := r.source.SearchProfiles(ctx, where)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", where, err)
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return orNil(strings.TrimSpace(profiles[0].Email)), nil
}

// CacheSize количество закэшированных результатов
func (r *Resolver) CacheSize() int {
	return r.cache.Size()
}

func withFallback(email *string, fallback string) *string {
	if email != nil {
		return email
	}
	return orNil(fallback)
}

func orNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
