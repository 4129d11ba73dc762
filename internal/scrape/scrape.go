// scrape извлекает волонтёрские возможности из HTML-страниц без API.
//
// Страница загружается через публичный CORS-relay прокси, отдающий
// {"contents": "<html>"}, и разбирается goquery по настроенным
// селекторам повторяющейся «карточки» возможности. Любая ошибка
// загрузки или разбора даёт пустой список, не ошибку.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pribylovaa/go-volunteer-aggregator/internal/fetch"
	"github.com/pribylovaa/go-volunteer-aggregator/internal/models"
	"github.com/pribylovaa/go-volunteer-aggregator/pkg/log"
)

// Target описывает страницу и селекторы карточки возможности.
type Target struct {
	// Name — имя цели; попадает в категорию записей.
	Name string
	// URL — адрес страницы.
	URL string
	// Container — селектор повторяющегося контейнера карточки.
	Container string
	// Селекторы полей внутри контейнера. Пустое совпадение — пустая строка.
	Title        string
	Organization string
	Description  string
	Date         string
	Location     string
	Link         string
}

// Scraper — скрейпер страниц через CORS-relay прокси.
// Загрузка идёт через кэширующий fetch: повторный скрейп той же
// страницы внутри TTL не ходит в сеть.
type Scraper struct {
	fetch    *fetch.Client
	proxyURL string
	now      func() time.Time
}

// proxyResponse — схема ответа прокси.
type proxyResponse struct {
	Contents string `json:"contents"`
}

// New создаёт скрейпер. При now == nil берётся time.Now.
func New(f *fetch.Client, proxyURL string, now func() time.Time) *Scraper {
	if now == nil {
		now = time.Now
	}

	return &Scraper{
		fetch:    f,
		proxyURL: strings.TrimRight(proxyURL, "/"),
		now:      now,
	}
}

// Scrape загружает и разбирает одну цель.
//
// Правила извлечения:
//   - текст полей обрезается по пробелам; несработавший селектор — "";
//   - запись без непустого Title отбрасывается;
//   - относительный href резолвится в абсолютный относительно страницы;
//   - id синтетический: scraped-<порядковый номер>-<unix millis>.
func (s *Scraper) Scrape(ctx context.Context, t Target) []models.Opportunity {
	const op = "scrape/Scrape"

	lg := log.From(ctx)

	var resp proxyResponse
	if err := s.fetch.GetJSON(ctx, s.proxyURL+"?url="+url.QueryEscape(t.URL), nil, &resp); err != nil {
		lg.Warn("scrape_fetch_failed",
			slog.String("op", op),
			slog.String("target", t.Name),
			slog.String("err", err.Error()),
		)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.Contents))
	if err != nil {
		lg.Warn("scrape_parse_failed",
			slog.String("op", op),
			slog.String("target", t.Name),
			slog.String("err", err.Error()),
		)
		return nil
	}

	base, err := url.Parse(t.URL)
	if err != nil {
		base = nil
	}

	nowMs := s.now().UnixMilli()

	var items []models.Opportunity
	doc.Find(t.Container).Each(func(i int, card *goquery.Selection) {
		title := text(card, t.Title)
		if title == "" {
			return
		}

		items = append(items, models.Opportunity{
			ID:           fmt.Sprintf("scraped-%d-%d", i, nowMs),
			Title:        title,
			Organization: text(card, t.Organization),
			Category:     t.Name,
			Description:  text(card, t.Description),
			Date:         text(card, t.Date),
			Location:     text(card, t.Location),
			Link:         href(card, t.Link, base),
		})
	})

	lg.Info("scrape_done",
		slog.String("op", op),
		slog.String("target", t.Name),
		slog.Int("items", len(items)),
	)

	return items
}

// text — обрезанный текст первого совпадения селектора внутри карточки.
func text(card *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}

	return strings.TrimSpace(card.Find(selector).First().Text())
}

// href — абсолютная ссылка из первого совпадения селектора.
func href(card *goquery.Selection, selector string, base *url.URL) string {
	if selector == "" {
		return ""
	}

	raw, ok := card.Find(selector).First().Attr("href")
	if !ok {
		return ""
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || base == nil {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	return base.ResolveReference(u).String()
}
