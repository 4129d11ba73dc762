// geocode — клиент Nominatim-совместимого геокодера.
//
// Транспортные ошибки, битые ответы и пустой список совпадений
// сводятся к явному сигналу «адрес не найден»: наружу ошибка
// не поднимается никогда, только логируется.
package geocode

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/pribylovaa/go-volunteer-aggregator/internal/fetch"
	"github.com/pribylovaa/go-volunteer-aggregator/internal/models"
	"github.com/pribylovaa/go-volunteer-aggregator/pkg/log"
)

// Client — клиент геокодера.
type Client struct {
	fetch   *fetch.Client
	baseURL string
	apiKey  string
}

// match — схема одного совпадения на границе с провайдером.
// Широты/долготы приходят строками.
type match struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// New создаёт клиент геокодера. apiKey опционален:
// бесплатный Nominatim работает без ключа.
func New(f *fetch.Client, baseURL, apiKey string) *Client {
	return &Client{
		fetch:   f,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// Lookup геокодирует свободный адрес, запрашивая не более одного совпадения.
//
// Возвращает (точка, true) при успехе и (ноль, false) при любой
// неудаче: транспорт, парсинг, пустой список. Сбой логируется Warn.
func (c *Client) Lookup(ctx context.Context, address string) (models.GeoPoint, bool) {
	const op = "geocode/Lookup"

	lg := log.From(ctx)

	if strings.TrimSpace(address) == "" {
		return models.GeoPoint{}, false
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	var matches []match
	if err := c.fetch.GetJSON(ctx, c.baseURL+"/search?"+q.Encode(), nil, &matches); err != nil {
		lg.Warn("geocode_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return models.GeoPoint{}, false
	}

	if len(matches) == 0 {
		lg.Info("geocode_no_match", slog.String("op", op))
		return models.GeoPoint{}, false
	}

	lat, err := strconv.ParseFloat(matches[0].Lat, 64)
	if err != nil {
		lg.Warn("geocode_bad_lat",
			slog.String("op", op),
			slog.String("value", matches[0].Lat),
		)
		return models.GeoPoint{}, false
	}

	lng, err := strconv.ParseFloat(matches[0].Lon, 64)
	if err != nil {
		lg.Warn("geocode_bad_lon",
			slog.String("op", op),
			slog.String("value", matches[0].Lon),
		)
		return models.GeoPoint{}, false
	}

	return models.GeoPoint{Lat: lat, Lng: lng}, true
}
