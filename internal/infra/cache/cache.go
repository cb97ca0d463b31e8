package cache

import (
	"sync"
	"time"

	"github.com/intellifit/GymBookingService/internal/domain"
)

// Clock источник времени; подменяется в тестах
type Clock interface {
	Now() time.Time
}

// entry снимок слотов ресурса на дату с моментом записи
type entry struct {
	slots    []*domain.TimeSlot
	cachedAt time.Time
}

// AvailabilityCache in-process кэш снимков доступности с TTL
//
// Двухуровневая структура: ресурс -> дата -> снимок. Инвалидация всегда
// адресная, на уровне пары (ресурс, дата) - единственная точка входа
// Invalidate, которую обязаны вызывать все мутации бронирований.
// Кэш не является источником истины: проверка пересечений при создании
// бронирования всегда идёт в БД.
type AvailabilityCache struct {
	mu      sync.RWMutex
	entries map[string]map[string]entry // ключи: resource.String(), дата YYYY-MM-DD
	ttl     time.Duration
	clock   Clock
}

// New создает кэш доступности с указанным TTL
func New(ttl time.Duration, clock Clock) *AvailabilityCache {
	return &AvailabilityCache{
		entries: make(map[string]map[string]entry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get возвращает снимок слотов ресурса на дату, если он есть и не протух
func (c *AvailabilityCache) Get(resource domain.ResourceRef, date time.Time) ([]*domain.TimeSlot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	byDate, ok := c.entries[resource.String()]
	if !ok {
		return nil, false
	}

	e, ok := byDate[dateKey(date)]
	if !ok {
		return nil, false
	}

	if c.clock.Now().Sub(e.cachedAt) >= c.ttl {
		return nil, false
	}

	return e.slots, true
}

// Put сохраняет снимок слотов ресурса на дату
func (c *AvailabilityCache) Put(resource domain.ResourceRef, date time.Time, slots []*domain.TimeSlot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := resource.String()
	byDate, ok := c.entries[key]
	if !ok {
		byDate = make(map[string]entry)
		c.entries[key] = byDate
	}

	byDate[dateKey(date)] = entry{
		slots:    slots,
		cachedAt: c.clock.Now(),
	}
}

// Invalidate синхронно сбрасывает снимок пары (ресурс, дата)
// Вызывается в том же потоке, что и мутация, до ответа клиенту:
// следующее чтение доступности гарантированно идёт в БД
func (c *AvailabilityCache) Invalidate(resource domain.ResourceRef, date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byDate, ok := c.entries[resource.String()]
	if !ok {
		return
	}

	delete(byDate, dateKey(date))
	if len(byDate) == 0 {
		delete(c.entries, resource.String())
	}
}

// InvalidateResource сбрасывает все снимки ресурса (смена статуса ресурса)
func (c *AvailabilityCache) InvalidateResource(resource domain.ResourceRef) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, resource.String())
}

// PurgeExpired удаляет протухшие снимки, возвращает число удалённых
// Вызывается фоновой уборкой, чтобы кэш не рос бесконечно
func (c *AvailabilityCache) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	purged := 0

	for resKey, byDate := range c.entries {
		for dKey, e := range byDate {
			if now.Sub(e.cachedAt) >= c.ttl {
				delete(byDate, dKey)
				purged++
			}
		}
		if len(byDate) == 0 {
			delete(c.entries, resKey)
		}
	}

	return purged
}

// Len возвращает текущее количество снимков в кэше
func (c *AvailabilityCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, byDate := range c.entries {
		total += len(byDate)
	}
	return total
}

func dateKey(date time.Time) string {
	return date.UTC().Format(domain.DateFormat)
}
