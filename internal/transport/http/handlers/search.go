package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	apierrors "github.com/pribylovaa/go-volunteer-aggregator/internal/errors"
	"github.com/pribylovaa/go-volunteer-aggregator/internal/models"
)

// SearchOpportunities — GET /v1/opportunities.
//
// Query-параметры:
//   - location (обязательный) — свободный адрес для поиска;
//   - distance — радиус в милях, целое > 0;
//   - category — одна из models.Categories или пусто;
//   - from, to — границы диапазона дат (YYYY-MM-DD, передаются как есть);
//   - commitment — ожидаемая занятость.
//
// Сбои апстримов не отражаются в HTTP-статусе: ответ всегда 200,
// деградировавшие источники перечислены в поле degraded.
func (h *Handlers) SearchOpportunities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	location := q.Get("location")
	if location == "" {
		apierrors.WriteError(w, r, fmt.Errorf("location: %w", apierrors.ErrInvalidArgument))
		return
	}

	var filters models.SearchFilters

	if v := q.Get("distance"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			apierrors.WriteError(w, r, fmt.Errorf("distance: %w", apierrors.ErrInvalidArgument))
			return
		}

		filters.Distance = n
	}

	if v := q.Get("category"); v != "" {
		if !models.IsKnownCategory(v) {
			apierrors.WriteError(w, r, fmt.Errorf("category: %w", apierrors.ErrInvalidArgument))
			return
		}

		filters.Category = v
	}

	filters.From = q.Get("from")
	filters.To = q.Get("to")
	filters.Commitment = q.Get("commitment")

	result := h.Service.Search(r.Context(), location, filters)

	writeJSON(w, http.StatusOK, result)
}

// Categories — GET /v1/categories. Фиксированный перечень для фильтра.
func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"categories": h.Service.Categories()})
}
