// cache реализует in-memory мемоизацию ответов внешних провайдеров с TTL.
//
// Это не LRU: записи не вытесняются, просроченные лениво игнорируются
// при чтении. Кэш живёт ровно столько, сколько живёт процесс.
package cache

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultTTL — срок жизни записи по умолчанию.
const DefaultTTL = 10 * time.Minute

type entry struct {
	payload  []byte
	storedAt time.Time
}

// Cache — потокобезопасная мемоизация по сигнатуре запроса.
//
// Источник времени инжектируется, чтобы логика истечения была
// детерминированно тестируемой, а не зависела от wall-clock.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
}

// New создаёт кэш с заданным TTL.
// При ttl <= 0 берётся DefaultTTL, при now == nil — time.Now.
func New(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if now == nil {
		now = time.Now
	}

	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry),
	}
}

// Key строит детерминированную сигнатуру запроса: URL плюс
// канонизированные (отсортированные) дополнительные опции.
// Записи никогда не разделяются между разными сигнатурами.
func Key(rawURL string, opts map[string]string) string {
	if len(opts) == 0 {
		return rawURL
	}

	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(rawURL)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(opts[k])
	}

	return b.String()
}

// Get возвращает сохранённый ответ и признак его наличия.
// Просроченная запись считается отсутствующей, но не удаляется.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.now().Sub(e.storedAt) >= c.ttl {
		return nil, false
	}

	return e.payload, true
}

// Set сохраняет ответ с текущей меткой времени,
// перезаписывая прежнюю запись для этой сигнатуры.
// Неуспешные вызовы кэшировать нельзя — это ответственность вызывающего.
func (c *Cache) Set(key string, payload []byte) {
	c.mu.Lock()
	c.entries[key] = entry{payload: payload, storedAt: c.now()}
	c.mu.Unlock()
}

// Len — число записей (включая просроченные); используется в тестах.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
