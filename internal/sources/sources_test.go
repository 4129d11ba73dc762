package sources

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pribylovaa/go-volunteer-aggregator/internal/cache"
	"github.com/pribylovaa/go-volunteer-aggregator/internal/fetch"
)

// newFetch — httptest-сервер плюс кэширующий клиент для тестов источников.
func newFetch(t *testing.T, handler http.HandlerFunc) (*fetch.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return fetch.New(srv.Client(), cache.New(10*time.Minute, nil)), srv
}

// sampleBody — валидный ответ провайдера с одной записью.
const sampleBody = `{"opportunities":[{
	"id":"op-1",
	"title":"Beach Cleanup",
	"organization":"Ocean Guard",
	"category":"environment",
	"description":"Monthly shoreline cleanup.",
	"date":"2025-07-12",
	"location":"Alexandria, VA",
	"contact":"info@oceanguard.example.org",
	"link":"https://oceanguard.example.org/cleanup"
}]}`
