package handlers

import (
	"fmt"
	"net/http"

	apierrors "github.com/pribylovaa/go-volunteer-aggregator/internal/errors"
	"github.com/pribylovaa/go-volunteer-aggregator/internal/models"
)

// geocodeResponse — тело ответа геокодирования.
// Location присутствует только при found=true.
type geocodeResponse struct {
	Found    bool             `json:"found"`
	Location *models.GeoPoint `json:"location,omitempty"`
}

// GeocodeLocation — GET /v1/geocode?q=<адрес>.
//
// Ненайденный адрес — это не ошибка: 200 c found=false.
func (h *Handlers) GeocodeLocation(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("q")
	if address == "" {
		apierrors.WriteError(w, r, fmt.Errorf("q: %w", apierrors.ErrInvalidArgument))
		return
	}

	point, ok := h.Service.GeocodeLocation(r.Context(), address)

	resp := geocodeResponse{Found: ok}
	if ok {
		resp.Location = &point
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health — GET /healthz. Простой liveness-признак для оркестрации.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
