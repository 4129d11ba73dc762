package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-volunteer-aggregator/internal/cache"
	"github.com/pribylovaa/go-volunteer-aggregator/internal/fetch"
)

func newClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	f := fetch.New(srv.Client(), cache.New(10*time.Minute, nil))
	return New(f, srv.URL, ""), srv
}

// TestLookup_OK — первый результат парсится в координаты.
func TestLookup_OK(t *testing.T) {
	t.Parallel()

	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Arlington, VA", r.URL.Query().Get("q"))
		require.Equal(t, "json", r.URL.Query().Get("format"))
		require.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Write([]byte(`[{"lat":"38.8816","lon":"-77.0910"}]`))
	})

	pt, ok := c.Lookup(context.Background(), "Arlington, VA")
	require.True(t, ok)
	require.InDelta(t, 38.8816, pt.Lat, 1e-9)
	require.InDelta(t, -77.0910, pt.Lng, 1e-9)
}

// TestLookup_EmptyResult — пустой массив совпадений -> явный сигнал отсутствия.
func TestLookup_EmptyResult(t *testing.T) {
	t.Parallel()

	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, ok := c.Lookup(context.Background(), "nowhere at all")
	require.False(t, ok)
}

// TestLookup_BadCoordinates — нечисловые координаты -> отсутствие, не паника.
func TestLookup_BadCoordinates(t *testing.T) {
	t.Parallel()

	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-number","lon":"0"}]`))
	})

	_, ok := c.Lookup(context.Background(), "Arlington, VA")
	require.False(t, ok)
}

// TestLookup_TransportFailure — недоступный провайдер -> отсутствие.
func TestLookup_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	f := fetch.New(srv.Client(), cache.New(10*time.Minute, nil))
	c := New(f, srv.URL, "")
	srv.Close()

	_, ok := c.Lookup(context.Background(), "Arlington, VA")
	require.False(t, ok)
}

// TestLookup_EmptyAddress — пустой адрес не ходит в сеть.
func TestLookup_EmptyAddress(t *testing.T) {
	t.Parallel()

	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected network call")
	})

	_, ok := c.Lookup(context.Background(), "   ")
	require.False(t, ok)
}

// TestLookup_APIKeyParam — ключ добавляется в query, когда задан.
func TestLookup_APIKeyParam(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "secret", r.URL.Query().Get("key"))
		w.Write([]byte(`[{"lat":"1","lon":"2"}]`))
	}))
	t.Cleanup(srv.Close)

	f := fetch.New(srv.Client(), cache.New(10*time.Minute, nil))
	c := New(f, srv.URL, "secret")

	_, ok := c.Lookup(context.Background(), "Arlington, VA")
	require.True(t, ok)
}
