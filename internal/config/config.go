// config предоставляет структуру конфигурации volunteer-сервиса
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"regexp"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
//
// Секреты провайдеров опциональны: отсутствие ключа переводит
// соответствующий источник в режим fallback-данных, а не валит старт.
type Config struct {
	Env      string        `yaml:"env"      env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
	Cache    CacheConfig   `yaml:"cache"`
	Search   SearchConfig  `yaml:"search"`
	Geocode  GeocodeConfig `yaml:"geocode"`
	Sources  SourcesConfig `yaml:"sources"`
	Scrape   ScrapeConfig  `yaml:"scrape"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	// Service — дедлайн обработки одного запроса и таймаут
	// исходящих HTTP-вызовов.
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"15s"`
	// Shutdown — лимит graceful shutdown.
	Shutdown time.Duration `yaml:"shutdown" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// CacheConfig — параметры мемоизации ответов внешних API.
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"10m"`
}

// SearchConfig — дефолты поиска.
type SearchConfig struct {
	// DefaultRadius — радиус в милях при отсутствии фильтра.
	DefaultRadius int `yaml:"default_radius" env:"DEFAULT_RADIUS" env-default:"25"`
	// DefaultZip — zip-код для источников, требующих его,
	// когда из локации код извлечь не удалось.
	DefaultZip string `yaml:"default_zip" env:"DEFAULT_ZIP" env-default:"22201"`
}

// GeocodeConfig — настройки геокодера.
type GeocodeConfig struct {
	BaseURL string `yaml:"base_url" env:"GEOCODE_BASE_URL" env-default:"https://nominatim.openstreetmap.org"`
	APIKey  string `yaml:"-" env:"GEOCODE_API_KEY" env-default:""`
}

// SourceConfig — настройки одного провайдера возможностей.
// Ключ читается только из окружения, в YAML его не кладём.
type SourceConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"-"`
}

// SourcesConfig — три поддерживаемых провайдера.
type SourcesConfig struct {
	VolunteerMatch SourceConfig `yaml:"volunteermatch"`
	Idealist       SourceConfig `yaml:"idealist"`
	AllForGood     SourceConfig `yaml:"allforgood"`
}

// ScrapeConfig — настройки скрейпа страниц без API.
type ScrapeConfig struct {
	// ProxyURL — CORS-relay прокси, отдающий {"contents": html}.
	ProxyURL string `yaml:"proxy_url" env:"SCRAPE_PROXY_URL" env-default:"https://api.allorigins.win/get"`
	// Targets — цели скрейпа; пустой список выключает скрейп целиком.
	Targets []ScrapeTarget `yaml:"targets"`
}

// ScrapeTarget — страница и селекторы карточки возможности.
type ScrapeTarget struct {
	Name         string `yaml:"name"`
	URL          string `yaml:"url"`
	Container    string `yaml:"container"`
	Title        string `yaml:"title"`
	Organization string `yaml:"organization"`
	Description  string `yaml:"description"`
	Date         string `yaml:"date"`
	Location     string `yaml:"location"`
	Link         string `yaml:"link"`
}

// Дефолтные публичные базовые URL провайдеров.
const (
	defaultVolunteerMatchURL = "https://api.volunteermatch.example.org/v1"
	defaultIdealistURL       = "https://api.idealist.example.org/v1"
	defaultAllForGoodURL     = "https://api.allforgood.example.org/v1"
)

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	finish := func(c *Config) (*Config, error) {
		c.applyDefaults()
		c.readSecrets()
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}
		return finish(c)
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}
		return finish(c)
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}
		return finish(&cfg)
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	return finish(&cfg)
}

// applyDefaults — дефолты для полей без env-тегов (вложенные структуры
// провайдеров cleanenv из окружения не заполняет).
func (c *Config) applyDefaults() {
	if c.Sources.VolunteerMatch.BaseURL == "" {
		c.Sources.VolunteerMatch.BaseURL = defaultVolunteerMatchURL
	}
	if c.Sources.Idealist.BaseURL == "" {
		c.Sources.Idealist.BaseURL = defaultIdealistURL
	}
	if c.Sources.AllForGood.BaseURL == "" {
		c.Sources.AllForGood.BaseURL = defaultAllForGoodURL
	}
}

// readSecrets — ключи провайдеров, только из окружения.
// GEOCODE_API_KEY читает cleanenv по env-тегу.
func (c *Config) readSecrets() {
	c.Sources.VolunteerMatch.APIKey = os.Getenv("VOLUNTEERMATCH_API_KEY")
	c.Sources.Idealist.APIKey = os.Getenv("IDEALIST_API_KEY")
	c.Sources.AllForGood.APIKey = os.Getenv("ALLFORGOOD_API_KEY")
}

var zipRe = regexp.MustCompile(`^\d{5}$`)

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.Timeouts.Service <= 0 {
		return fmt.Errorf("timeouts.service must be > 0")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0")
	}
	if c.Search.DefaultRadius <= 0 {
		return fmt.Errorf("search.default_radius must be > 0")
	}
	if !zipRe.MatchString(c.Search.DefaultZip) {
		return fmt.Errorf("search.default_zip must be a 5-digit zip code")
	}
	if c.Geocode.BaseURL == "" {
		return fmt.Errorf("geocode.base_url is required")
	}
	for _, t := range c.Scrape.Targets {
		if t.Name == "" || t.URL == "" || t.Container == "" || t.Title == "" {
			return fmt.Errorf("scrape.targets: name, url, container and title are required")
		}
	}
	return nil
}
