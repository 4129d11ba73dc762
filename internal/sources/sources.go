// sources содержит клиентов внешних провайдеров волонтёрских возможностей.
//
// Контракт единый для всех провайдеров: Search никогда не возвращает
// ошибку. Любой сбой (нет ключа, non-2xx, транспорт, битый JSON,
// несовпадение схемы) выражается fallback-записью и флагом Degraded —
// система деградирует, а не показывает пользователю ошибку.
package sources

import (
	"context"

	"github.com/pribylovaa/go-volunteer-aggregator/internal/models"
)

// Source — контракт провайдера возможностей.
type Source interface {
	// Name — стабильное имя источника для логов и флагов деградации.
	Name() string
	// Search выполняет поиск по локации и фильтрам.
	Search(ctx context.Context, location string, filters models.SearchFilters) Result
}

// Result — исход обращения к провайдеру.
//
// Degraded == true означает, что Opportunities — это fallback-данные,
// а не живой ответ провайдера.
type Result struct {
	Source        string
	Opportunities []models.Opportunity
	Degraded      bool
}

// degraded — единая сборка fallback-результата источника.
func degraded(name string, fallback models.Opportunity) Result {
	return Result{
		Source:        name,
		Opportunities: []models.Opportunity{fallback},
		Degraded:      true,
	}
}
