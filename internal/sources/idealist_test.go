package sources

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-volunteer-aggregator/internal/models"
)

// TestIdealist_Search_CategoryCatalog — метка категории маппится
// в числовой идентификатор каталога провайдера.
func TestIdealist_Search_CategoryCatalog(t *testing.T) {
	t.Parallel()

	f, srv := newFetch(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "id-key", r.Header.Get("X-Api-Key"))
		require.Equal(t, "4", r.URL.Query().Get("category"))
		w.Write([]byte(sampleBody))
	})

	s := NewIdealist(f, srv.URL, "id-key", 25)
	res := s.Search(context.Background(), "Arlington, VA", models.SearchFilters{Category: "education"})
	require.False(t, res.Degraded)
}

// TestIdealist_Search_UnknownCategoryOmitted — нераспознанная метка опускается.
func TestIdealist_Search_UnknownCategoryOmitted(t *testing.T) {
	t.Parallel()

	f, srv := newFetch(t, func(w http.ResponseWriter, r *http.Request) {
		require.False(t, r.URL.Query().Has("category"))
		w.Write([]byte(sampleBody))
	})

	s := NewIdealist(f, srv.URL, "id-key", 25)
	res := s.Search(context.Background(), "Arlington, VA", models.SearchFilters{Category: "spelunking"})
	require.False(t, res.Degraded)
}

// TestIdealist_Search_Commitment — фильтр занятости передаётся как есть.
func TestIdealist_Search_Commitment(t *testing.T) {
	t.Parallel()

	f, srv := newFetch(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "weekly", r.URL.Query().Get("commitment"))
		w.Write([]byte(sampleBody))
	})

	s := NewIdealist(f, srv.URL, "id-key", 25)
	res := s.Search(context.Background(), "Arlington, VA", models.SearchFilters{Commitment: "weekly"})
	require.False(t, res.Degraded)
}

// TestIdealist_Search_MalformedJSON — битое тело -> fallback.
func TestIdealist_Search_MalformedJSON(t *testing.T) {
	t.Parallel()

	f, srv := newFetch(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"opportunities":[`))
	})

	s := NewIdealist(f, srv.URL, "id-key", 25)
	res := s.Search(context.Background(), "Arlington, VA", models.SearchFilters{})

	require.True(t, res.Degraded)
	require.Equal(t, "After-School Tutor", res.Opportunities[0].Title)
}

// TestIdealist_Search_NoKey — без ключа отдаётся fallback.
func TestIdealist_Search_NoKey(t *testing.T) {
	t.Parallel()

	f, srv := newFetch(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected network call")
	})

	s := NewIdealist(f, srv.URL, "", 25)
	res := s.Search(context.Background(), "Arlington, VA", models.SearchFilters{})
	require.True(t, res.Degraded)
}
