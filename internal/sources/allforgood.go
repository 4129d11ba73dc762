package sources

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/pribylovaa/go-volunteer-aggregator/internal/fetch"
	"github.com/pribylovaa/go-volunteer-aggregator/internal/models"
	"github.com/pribylovaa/go-volunteer-aggregator/pkg/log"
)

// AllForGood — клиент одноимённого провайдера.
//
// Авторизация — заголовок X-API-Key. Провайдер ищет только по
// пятизначному zip-коду: код извлекается из свободного текста локации,
// при отсутствии берётся фиксированный дефолт.
type AllForGood struct {
	fetch         *fetch.Client
	baseURL       string
	apiKey        string
	defaultZip    string
	defaultRadius int
}

type afgResponse struct {
	Opportunities []afgOpportunity `json:"opportunities"`
}

type afgOpportunity struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Location     string `json:"location"`
	Skills       string `json:"skills"`
	Contact      string `json:"contact"`
	Link         string `json:"link"`
}

// NewAllForGood создаёт клиент. Пустой apiKey переводит источник
// в режим fallback-данных без сетевых вызовов.
func NewAllForGood(f *fetch.Client, baseURL, apiKey, defaultZip string, defaultRadius int) *AllForGood {
	if defaultZip == "" {
		defaultZip = "22201"
	}

	if defaultRadius <= 0 {
		defaultRadius = 25
	}

	return &AllForGood{
		fetch:         f,
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiKey:        apiKey,
		defaultZip:    defaultZip,
		defaultRadius: defaultRadius,
	}
}

func (s *AllForGood) Name() string { return "allforgood" }

var zipRe = regexp.MustCompile(`\b\d{5}\b`)

// extractZipCode достаёт первый пятизначный zip из свободного текста.
// Когда кода нет, возвращает def.
func extractZipCode(location, def string) string {
	if zip := zipRe.FindString(location); zip != "" {
		return zip
	}

	return def
}

// Search выполняет поиск. Ошибок не возвращает: любой сбой — fallback.
func (s *AllForGood) Search(ctx context.Context, location string, filters models.SearchFilters) Result {
	const op = "sources/allforgood/Search"

	lg := log.From(ctx)

	if s.apiKey == "" {
		lg.Debug("source_no_key", slog.String("op", op))
		return degraded(s.Name(), allForGoodFallback())
	}

	radius := filters.Distance
	if radius <= 0 {
		radius = s.defaultRadius
	}

	q := url.Values{}
	q.Set("zip", extractZipCode(location, s.defaultZip))
	q.Set("distance", strconv.Itoa(radius))
	if filters.Category != "" {
		q.Set("category", filters.Category)
	}

	headers := map[string]string{"X-API-Key": s.apiKey}

	var resp afgResponse
	if err := s.fetch.GetJSON(ctx, s.baseURL+"/search?"+q.Encode(), headers, &resp); err != nil {
		lg.Warn("source_degraded",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return degraded(s.Name(), allForGoodFallback())
	}

	if resp.Opportunities == nil {
		lg.Warn("source_schema_mismatch", slog.String("op", op))
		return degraded(s.Name(), allForGoodFallback())
	}

	items := make([]models.Opportunity, 0, len(resp.Opportunities))
	for _, o := range resp.Opportunities {
		items = append(items, models.Opportunity{
			ID:           o.ID,
			Title:        o.Title,
			Organization: o.Organization,
			Category:     o.Category,
			Description:  o.Description,
			Date:         o.Date,
			Time:         o.Time,
			Location:     o.Location,
			Skills:       o.Skills,
			Contact:      o.Contact,
			Link:         o.Link,
		})
	}

	return Result{Source: s.Name(), Opportunities: items}
}
