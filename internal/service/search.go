package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pribylovaa/go-volunteer-aggregator/internal/models"
	"github.com/pribylovaa/go-volunteer-aggregator/internal/sources"
	"github.com/pribylovaa/go-volunteer-aggregator/pkg/log"
)

// GeocodeLocation геокодирует свободный адрес.
// Отсутствие результата — это (ноль, false), не ошибка.
func (s *Service) GeocodeLocation(ctx context.Context, address string) (models.GeoPoint, bool) {
	const op = "service/search/GeocodeLocation"

	point, ok := s.geocoder.Lookup(ctx, address)

	log.From(ctx).Info("geocode_done",
		slog.String("op", op),
		slog.Bool("found", ok),
	)

	return point, ok
}

// Search выполняет поиск по всем источникам конкурентно.
//
// Особенности:
//   - все вызовы стартуют до первого ожидания; ждём каждый из них,
//     без гонок и short-circuit по первому сбою;
//   - источники по контракту не возвращают ошибок — деградация видна
//     в Result.Degraded и попадает в SearchResult.Degraded;
//   - паника источника гасится в его горутине и считается деградацией;
//     паника самой оркестрации даёт фиксированный fallback-набор.
//     Наружу ошибка не уходит никогда.
func (s *Service) Search(ctx context.Context, location string, filters models.SearchFilters) (result models.SearchResult) {
	const op = "service/search/Search"

	lg := log.From(ctx)

	defer func() {
		if r := recover(); r != nil {
			lg.Error("search_panic",
				slog.String("op", op),
				slog.Any("panic", r),
			)
			result = models.SearchResult{Opportunities: sources.FallbackSet()}
		}
	}()

	results := make([]sources.Result, len(s.sources))
	scraped := make([][]models.Opportunity, len(s.targets))

	var wg sync.WaitGroup

	for i, src := range s.sources {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()
			// recover обязан жить в той же горутине, что и паника:
			// внешний defer Search её не достанет.
			defer func() {
				if r := recover(); r != nil {
					lg.Error("source_panic",
						slog.String("op", op),
						slog.String("source", src.Name()),
						slog.Any("panic", r),
					)
					results[i] = sources.Result{Source: src.Name(), Degraded: true}
				}
			}()
			results[i] = src.Search(ctx, location, filters)
		}(i, src)
	}

	if s.scraper != nil {
		for i := range s.targets {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						lg.Error("scrape_panic",
							slog.String("op", op),
							slog.String("target", s.targets[i].Name),
							slog.Any("panic", r),
						)
						scraped[i] = nil
					}
				}()
				scraped[i] = s.scraper.Scrape(ctx, s.targets[i])
			}(i)
		}
	}

	wg.Wait()

	// Скрейп-цели подшиваются после API-источников в порядке конфигурации.
	for i, items := range scraped {
		results = append(results, sources.Result{
			Source:        "scrape:" + s.targets[i].Name,
			Opportunities: items,
		})
	}

	combined := combineResults(results)

	var degradedNames []string
	for _, r := range results {
		if r.Degraded {
			degradedNames = append(degradedNames, r.Source)
		}
	}

	// Деградация не бывает пустой: если живых записей нет, а сбои были,
	// отдаём фиксированный fallback-набор.
	if len(combined) == 0 && len(degradedNames) > 0 {
		combined = sources.FallbackSet()
	}

	lg.Info("search_done",
		slog.String("op", op),
		slog.Int("sources", len(results)),
		slog.Int("items", len(combined)),
		slog.Int("degraded", len(degradedNames)),
	)

	return models.SearchResult{
		Opportunities: combined,
		Degraded:      degradedNames,
	}
}

// combineResults сводит ответы источников в один список.
//
// Порядок: источники в порядке перечисления, записи — в порядке ответа
// источника. Дедупликация по DedupKey: первая запись выигрывает,
// последующие дубликаты молча отбрасываются, даже если отличаются
// другими полями. Входные слайсы не мутируются.
func combineResults(results []sources.Result) []models.Opportunity {
	total := 0
	for _, r := range results {
		total += len(r.Opportunities)
	}

	seen := make(map[string]struct{}, total)
	combined := make([]models.Opportunity, 0, total)

	for _, r := range results {
		for _, o := range r.Opportunities {
			key := o.DedupKey()
			if _, ok := seen[key]; ok {
				continue
			}

			seen[key] = struct{}{}
			combined = append(combined, o)
		}
	}

	return combined
}
