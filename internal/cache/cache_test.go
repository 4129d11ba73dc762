package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock — управляемый источник времени для детерминированных тестов TTL.
type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{cur: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cur
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.cur = f.cur.Add(d)
	f.mu.Unlock()
}

// TestKey_Deterministic — сигнатура не зависит от порядка обхода map.
func TestKey_Deterministic(t *testing.T) {
	t.Parallel()

	a := Key("https://api.example/search?q=x", map[string]string{
		"Authorization": "Bearer k",
		"Accept":        "application/json",
	})
	b := Key("https://api.example/search?q=x", map[string]string{
		"Accept":        "application/json",
		"Authorization": "Bearer k",
	})

	require.Equal(t, a, b)
	require.Equal(t, "https://api.example/search?q=x|Accept=application/json|Authorization=Bearer k", a)
}

// TestKey_DistinctSignatures — разные опции дают разные сигнатуры.
func TestKey_DistinctSignatures(t *testing.T) {
	t.Parallel()

	base := Key("https://api.example/search", nil)
	withAuth := Key("https://api.example/search", map[string]string{"Authorization": "Bearer k"})
	otherKey := Key("https://api.example/search", map[string]string{"Authorization": "Bearer other"})

	require.NotEqual(t, base, withAuth)
	require.NotEqual(t, withAuth, otherKey)
}

// TestCache_HitWithinTTL — запись жива, пока now-storedAt < ttl.
func TestCache_HitWithinTTL(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	c := New(10*time.Minute, clk.Now)

	c.Set("k", []byte(`{"ok":true}`))

	got, ok := c.Get("k")
	require.True(t, ok)
	require.JSONEq(t, `{"ok":true}`, string(got))

	clk.Advance(9*time.Minute + 59*time.Second)
	_, ok = c.Get("k")
	require.True(t, ok)
}

// TestCache_LazyExpiry — по истечении TTL запись невидима, но не удаляется.
func TestCache_LazyExpiry(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	c := New(10*time.Minute, clk.Now)

	c.Set("k", []byte(`1`))
	clk.Advance(10 * time.Minute)

	_, ok := c.Get("k")
	require.False(t, ok)
	// Фоновой очистки нет: просроченная запись остаётся в map.
	require.Equal(t, 1, c.Len())
}

// TestCache_SetOverwrites — повторный Set перезаписывает и payload, и метку времени.
func TestCache_SetOverwrites(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	c := New(10*time.Minute, clk.Now)

	c.Set("k", []byte(`old`))
	clk.Advance(9 * time.Minute)
	c.Set("k", []byte(`new`))
	clk.Advance(9 * time.Minute)

	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "new", string(got))
}

// TestCache_MissUnknownKey — отсутствующая сигнатура не находится.
func TestCache_MissUnknownKey(t *testing.T) {
	t.Parallel()

	c := New(0, nil)
	_, ok := c.Get("missing")
	require.False(t, ok)
}

// TestNew_Defaults — нулевые аргументы дают рабочий кэш с DefaultTTL.
func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	c := New(0, nil)
	require.Equal(t, DefaultTTL, c.ttl)
	c.Set("k", []byte(`x`))
	_, ok := c.Get("k")
	require.True(t, ok)
}
