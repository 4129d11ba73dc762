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

// Idealist — клиент одноимённого провайдера.
//
// Авторизация — заголовок X-Api-Key. Категория передаётся числовым
// идентификатором внутреннего каталога провайдера; нераспознанная
// метка опускается (провайдер трактует отсутствие как «все категории»).
type Idealist struct {
	fetch         *fetch.Client
	baseURL       string
	apiKey        string
	defaultRadius int
}

// idealistCatalog — маппинг наших меток категорий в каталог провайдера.
var idealistCatalog = map[string]int{
	"animals":     1,
	"arts":        2,
	"community":   3,
	"education":   4,
	"crisis":      5,
	"food":        6,
	"environment": 7,
	"seniors":     9,
	"health":      10,
	"youth":       12,
}

type idealistResponse struct {
	Opportunities []idealistOpportunity `json:"opportunities"`
}

type idealistOpportunity struct {
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

// NewIdealist создаёт клиент. Пустой apiKey переводит источник
// в режим fallback-данных без сетевых вызовов.
func NewIdealist(f *fetch.Client, baseURL, apiKey string, defaultRadius int) *Idealist {
	if defaultRadius <= 0 {
		defaultRadius = 25
	}

	return &Idealist{
		fetch:         f,
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiKey:        apiKey,
		defaultRadius: defaultRadius,
	}
}

func (s *Idealist) Name() string { return "idealist" }

// Search выполняет поиск. Ошибок не возвращает: любой сбой — fallback.
func (s *Idealist) Search(ctx context.Context, location string, filters models.SearchFilters) Result {
	const op = "sources/idealist/Search"

	lg := log.From(ctx)

	if s.apiKey == "" {
		lg.Debug("source_no_key", slog.String("op", op))
		return degraded(s.Name(), idealistFallback())
	}

	radius := filters.Distance
	if radius <= 0 {
		radius = s.defaultRadius
	}

	q := url.Values{}
	q.Set("location", location)
	q.Set("radius", strconv.Itoa(radius))
	if id, ok := idealistCatalog[filters.Category]; ok {
		q.Set("category", strconv.Itoa(id))
	}
	if filters.Commitment != "" {
		q.Set("commitment", filters.Commitment)
	}

	headers := map[string]string{"X-Api-Key": s.apiKey}

	var resp idealistResponse
	if err := s.fetch.GetJSON(ctx, s.baseURL+"/opportunities?"+q.Encode(), headers, &resp); err != nil {
		lg.Warn("source_degraded",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return degraded(s.Name(), idealistFallback())
	}

	if resp.Opportunities == nil {
		lg.Warn("source_schema_mismatch", slog.String("op", op))
		return degraded(s.Name(), idealistFallback())
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
