// fetch — кэширующий HTTP GET для JSON-ответов внешних провайдеров.
//
// Каждый исходящий вызов ключуется точным URL запроса плюс
// сериализацией дополнительных заголовков. Живая (непросроченная)
// запись возвращается без сетевого вызова; неуспешные вызовы
// (non-2xx, транспортная ошибка, битый JSON) не кэшируются.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pribylovaa/go-volunteer-aggregator/internal/cache"
	"github.com/pribylovaa/go-volunteer-aggregator/pkg/log"
)

// Client — общий клиент для геокодера и клиентов источников.
// HTTP-клиент настраивается извне (таймауты, прокси и т.д.).
type Client struct {
	http  *http.Client
	cache *cache.Cache
}

// New создаёт кэширующий клиент.
func New(client *http.Client, c *cache.Cache) *Client {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	if c == nil {
		c = cache.New(0, nil)
	}

	return &Client{http: client, cache: c}
}

// GetJSON выполняет GET rawURL с заголовками headers и декодирует тело в out.
//
// Поведение:
//   - живой кэш по сигнатуре запроса -> декодирование без сети;
//   - иначе запрос; не-2xx или ошибка транспорта -> ошибка, без записи в кэш;
//   - тело кэшируется только после успешного декодирования.
func (c *Client) GetJSON(ctx context.Context, rawURL string, headers map[string]string, out any) error {
	const op = "fetch/GetJSON"

	key := cache.Key(rawURL, headers)
	if body, ok := c.cache.Get(key); ok {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%s: decode_cached: %w", op, err)
		}
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%s: new_request: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.From(ctx).Warn("http_error",
			slog.String("op", op),
			slog.String("url", rawURL),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s: status=%d", op, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read_body: %w", op, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}

	c.cache.Set(key, body)

	return nil
}
