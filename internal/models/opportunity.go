// models содержит доменные сущности volunteer-сервиса.
// Эти типы используются слоями бизнес-логики, клиентов источников и транспорта.
package models

// Opportunity — доменная сущность волонтёрской возможности.
//
// Особенности:
//   - ID уникален в рамках записи источника и передаётся как есть;
//   - «одинаковость» записей между источниками определяется парой
//     (Title, Organization), а не ID — см. DedupKey.
type Opportunity struct {
	// ID — идентификатор записи у источника.
	ID string `json:"id"`
	// Title — название возможности.
	Title string `json:"title"`
	// Organization — организация-владелец.
	Organization string `json:"organization"`
	// Category — категория из фиксированного перечня (см. Categories).
	Category string `json:"category"`
	// Description — описание возможности.
	Description string `json:"description"`
	// Date — дата проведения в строковом виде источника.
	Date string `json:"date"`
	// Time — время проведения (опционально).
	Time string `json:"time,omitempty"`
	// Location — адрес/место проведения.
	Location string `json:"location"`
	// Skills — требуемые навыки (опционально).
	Skills string `json:"skills,omitempty"`
	// Contact — контакт организатора.
	Contact string `json:"contact"`
	// Link — ссылка на страницу возможности (опционально).
	Link string `json:"link,omitempty"`
}

// DedupKey — составной ключ дедупликации между источниками.
//
// Известное ограничение: ключ склеит легитимно разные записи одной
// организации с одинаковым названием (например, одно и то же событие
// в разные даты). TODO: включить Date в ключ после согласования с фронтом.
func (o Opportunity) DedupKey() string {
	return o.Title + "-" + o.Organization
}

// SearchFilters — необязательные фильтры поиска.
//
// Отсутствующие поля получают дефолты конкретного источника
// (радиус — config.SearchConfig.DefaultRadius, категория — пустая).
type SearchFilters struct {
	// Distance — радиус поиска в милях.
	Distance int `json:"distance,omitempty"`
	// Category — категория из фиксированного перечня или пустая строка.
	Category string `json:"category,omitempty"`
	// From/To — границы диапазона дат в строковом виде (YYYY-MM-DD).
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
	// Commitment — ожидаемая занятость (one-time, weekly, ...).
	Commitment string `json:"commitment,omitempty"`
}

// GeoPoint — координаты, полученные геокодированием свободного адреса.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SearchResult — агрегированный результат поиска по всем источникам.
//
// Degraded перечисляет источники, ответившие fallback-данными вместо
// живого ответа: контракт «всегда деградируем, никогда не падаем»
// виден в типе, а не прячется за подавлением ошибок.
type SearchResult struct {
	Opportunities []Opportunity `json:"opportunities"`
	Degraded      []string      `json:"degraded,omitempty"`
}

// Categories — фиксированный перечень категорий для фильтра на фронте.
// Порядок стабилен: фронт рендерит select в этом порядке.
func Categories() []string {
	return []string{
		"education",
		"environment",
		"health",
		"community",
		"animals",
		"seniors",
		"youth",
		"food",
		"arts",
		"crisis",
	}
}

// IsKnownCategory сообщает, входит ли категория в фиксированный перечень.
// Пустая строка допустима и означает «все категории».
func IsKnownCategory(category string) bool {
	if category == "" {
		return true
	}

	for _, c := range Categories() {
		if c == category {
			return true
		}
	}

	return false
}
