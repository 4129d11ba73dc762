package scrape

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-volunteer-aggregator/internal/cache"
	"github.com/pribylovaa/go-volunteer-aggregator/internal/fetch"
)

const samplePage = `
<html><body>
  <div class="card">
    <h3 class="title"> Trail Day </h3>
    <span class="org">Valley Trails</span>
    <p class="desc">Maintain hiking trails.</p>
    <span class="date">2025-08-02</span>
    <span class="loc">Shenandoah, VA</span>
    <a class="more" href="/events/trail-day">details</a>
  </div>
  <div class="card">
    <h3 class="title"></h3>
    <span class="org">No Title Org</span>
  </div>
  <div class="card">
    <h3 class="title">River Sweep</h3>
    <a class="more" href="https://other.example.org/river">details</a>
  </div>
</body></html>`

// newScraper — прокси-сервер, заворачивающий samplePage в {"contents": ...}.
func newScraper(t *testing.T, page string) *Scraper {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "https://volunteer.example.org/board", r.URL.Query().Get("url"))
		json.NewEncoder(w).Encode(map[string]string{"contents": page})
	}))
	t.Cleanup(srv.Close)

	f := fetch.New(srv.Client(), cache.New(10*time.Minute, nil))
	fixed := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return New(f, srv.URL, fixed)
}

func target() Target {
	return Target{
		Name:         "community-board",
		URL:          "https://volunteer.example.org/board",
		Container:    "div.card",
		Title:        "h3.title",
		Organization: "span.org",
		Description:  "p.desc",
		Date:         "span.date",
		Location:     "span.loc",
		Link:         "a.more",
	}
}

// TestScrape_ExtractsCards — поля обрезаются, карточка без заголовка
// отбрасывается, относительная ссылка резолвится в абсолютную.
func TestScrape_ExtractsCards(t *testing.T) {
	t.Parallel()

	s := newScraper(t, samplePage)
	items := s.Scrape(context.Background(), target())

	require.Len(t, items, 2)

	first := items[0]
	require.Equal(t, "Trail Day", first.Title)
	require.Equal(t, "Valley Trails", first.Organization)
	require.Equal(t, "Maintain hiking trails.", first.Description)
	require.Equal(t, "2025-08-02", first.Date)
	require.Equal(t, "Shenandoah, VA", first.Location)
	require.Equal(t, "https://volunteer.example.org/events/trail-day", first.Link)
	require.Equal(t, "community-board", first.Category)

	second := items[1]
	require.Equal(t, "River Sweep", second.Title)
	// Несработавшие селекторы дают пустые строки.
	require.Empty(t, second.Organization)
	require.Empty(t, second.Description)
	// Абсолютная ссылка остаётся как есть.
	require.Equal(t, "https://other.example.org/river", second.Link)
}

// TestScrape_SyntheticIDs — id уникальны и строятся из индекса и времени.
func TestScrape_SyntheticIDs(t *testing.T) {
	t.Parallel()

	s := newScraper(t, samplePage)
	items := s.Scrape(context.Background(), target())

	ms := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	require.Equal(t, "scraped-0-"+strconv.FormatInt(ms, 10), items[0].ID)
	require.Equal(t, "scraped-2-"+strconv.FormatInt(ms, 10), items[1].ID)
	require.NotEqual(t, items[0].ID, items[1].ID)
}

// TestScrape_FetchError — недоступный прокси -> пустой список, не паника.
func TestScrape_FetchError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	f := fetch.New(srv.Client(), cache.New(10*time.Minute, nil))
	s := New(f, srv.URL, nil)
	srv.Close()

	require.Empty(t, s.Scrape(context.Background(), target()))
}

// TestScrape_NoMatches — страница без карточек -> пустой список.
func TestScrape_NoMatches(t *testing.T) {
	t.Parallel()

	s := newScraper(t, `<html><body><p>nothing here</p></body></html>`)
	require.Empty(t, s.Scrape(context.Background(), target()))
}
