package sources

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

// VolunteerMatch — клиент одноимённого провайдера.
//
// Авторизация — Authorization: Bearer <key>. Запрос принимает локацию
// свободным текстом, радиус в милях и категорию как есть.
type VolunteerMatch struct {
	fetch         *fetch.Client
	baseURL       string
	apiKey        string
	defaultRadius int
}

// vmResponse — схема ответа на границе с провайдером.
// Валидируем только то, что читаем; прочие поля проходят насквозь.
type vmResponse struct {
	Opportunities []vmOpportunity `json:"opportunities"`
}

type vmOpportunity struct {
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

// NewVolunteerMatch создаёт клиент. Пустой apiKey переводит источник
// в режим fallback-данных без сетевых вызовов.
func NewVolunteerMatch(f *fetch.Client, baseURL, apiKey string, defaultRadius int) *VolunteerMatch {
	if defaultRadius <= 0 {
		defaultRadius = 25
	}

	return &VolunteerMatch{
		fetch:         f,
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiKey:        apiKey,
		defaultRadius: defaultRadius,
	}
}

func (s *VolunteerMatch) Name() string { return "volunteermatch" }

// Search выполняет поиск. Ошибок не возвращает: любой сбой — fallback.
func (s *VolunteerMatch) Search(ctx context.Context, location string, filters models.SearchFilters) Result {
	const op = "sources/volunteermatch/Search"

	lg := log.From(ctx)

	if s.apiKey == "" {
		lg.Debug("source_no_key", slog.String("op", op))
		return degraded(s.Name(), volunteerMatchFallback())
	}

	radius := filters.Distance
	if radius <= 0 {
		radius = s.defaultRadius
	}

	q := url.Values{}
	q.Set("location", location)
	q.Set("radius", strconv.Itoa(radius))
	if filters.Category != "" {
		q.Set("category", filters.Category)
	}
	if filters.From != "" {
		q.Set("date_from", filters.From)
	}
	if filters.To != "" {
		q.Set("date_to", filters.To)
	}

	headers := map[string]string{"Authorization": "Bearer " + s.apiKey}

	var resp vmResponse
	if err := s.fetch.GetJSON(ctx, s.baseURL+"/search?"+q.Encode(), headers, &resp); err != nil {
		lg.Warn("source_degraded",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return degraded(s.Name(), volunteerMatchFallback())
	}

	if resp.Opportunities == nil {
		lg.Warn("source_schema_mismatch", slog.String("op", op))
		return degraded(s.Name(), volunteerMatchFallback())
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
