// handlers реализует REST-хендлеры volunteer-сервиса поверх service.Service.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/go-volunteer-aggregator/internal/service"
)

// Handlers агрегирует зависимости хендлеров.
type Handlers struct {
	Service *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{Service: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
