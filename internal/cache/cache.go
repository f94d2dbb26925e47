// Package cache хранит результаты поиска e-mail покупателей в памяти процесса
package cache

import (
	"sync"
	"time"
)

type entry struct {
	email      *string // nil: профиль не найден или поиск завершился ошибкой
	expireTime time.Time
}

// Cache кэш результатов поиска по ключу вида "userId:..." или "email:...".
// Отрицательный результат (nil) тоже кэшируется.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration // 0: без истечения, на время жизни процесса
}

// New создает кэш. ttl == 0 отключает истечение.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// Set сохраняет результат поиска
func (c *Cache) Set(key string, email *string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{email: email}
	if c.ttl > 0 {
		e.expireTime = time.Now().Add(c.ttl)
	}
	c.entries[key] = e
}

// Get возвращает сохраненный результат. Второе значение false, если ключа нет или он истек.
func (c *Cache) Get(key string) (*string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.expired(e, time.Now()) {
		return nil, false
	}
	return e.email, true
}

// Size возвращает количество действующих записей
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now()
	count := 0
	for _, e := range c.entries {
		if !c.expired(e, now) {
			count++
		}
	}
	return count
}

func (c *Cache) expired(e entry, now time.Time) bool {
	return c.ttl > 0 && now.After(e.expireTime)
}
