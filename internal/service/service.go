// service содержит бизнес-логику volunteer-сервиса.
//
// Публичные операции не возвращают ошибок апстримов: сбой любого
// внешнего вызова уже сведён нижними слоями к fallback-значению.
package service

import (
	"context"

	"github.com/pribylovaa/go-volunteer-aggregator/internal/models"
	"github.com/pribylovaa/go-volunteer-aggregator/internal/scrape"
	"github.com/pribylovaa/go-volunteer-aggregator/internal/sources"
)

// Geocoder — контракт геокодера.
type Geocoder interface {
	Lookup(ctx context.Context, address string) (models.GeoPoint, bool)
}

// Scraper — контракт скрейпера страниц без API.
type Scraper interface {
	Scrape(ctx context.Context, t scrape.Target) []models.Opportunity
}

// Service — описывает бизнес-логику volunteer-сервиса.
type Service struct {
	geocoder Geocoder
	sources  []sources.Source
	scraper  Scraper
	targets  []scrape.Target
}

// New создаёт новый экземпляр Service.
// scraper и targets опциональны: при пустом списке целей агрегат —
// это ровно ответы API-источников.
func New(geocoder Geocoder, srcs []sources.Source, scraper Scraper, targets []scrape.Target) *Service {
	return &Service{
		geocoder: geocoder,
		sources:  srcs,
		scraper:  scraper,
		targets:  targets,
	}
}

// Categories — фиксированный перечень категорий для фильтра на фронте.
func (s *Service) Categories() []string {
	return models.Categories()
}
