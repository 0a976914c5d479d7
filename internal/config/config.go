package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"souvenirspartan/internal/catalog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

var validate = validator.New()

type Config struct {
	Server   ServerConfig
	Fixtures FixturesConfig
	Amazon   AmazonConfig
	Axesso   AxessoConfig
	Walmart  WalmartConfig
	Logging  LoggingConfig

	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"8s"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" validate:"omitempty,url"`
}

type ServerConfig struct {
	Port      string `env:"PORT" envDefault:"3000"`
	Addr      string `env:"ADDR"`
	PublicDir string `env:"PUBLIC_DIR" envDefault:"./public"`
	// SiteURL is the public origin used in sitemap links; empty means the request host.
	SiteURL string `env:"SITE_URL" validate:"omitempty,url"`
}

type FixturesConfig struct {
	Dir     string `env:"DATA_DIR" envDefault:"./public/data/products"`
	Readers int    `env:"FIXTURE_READERS" envDefault:"4"`

	// optional blob backing for the fixture set
	Container   string `env:"FIXTURE_CONTAINER"`
	AccountName string `env:"AZURE_STORAGE_ACCOUNT_NAME"`
	AccountKey  string `env:"AZURE_STORAGE_PRIMARY_ACCOUNT_KEY"`
}

type AmazonConfig struct {
	AccessKey    string   `env:"AMAZON_ACCESS_KEY"`
	SecretKey    string   `env:"AMAZON_SECRET_KEY"`
	AssociateTag string   `env:"AMAZON_ASSOCIATE_TAG"`
	Region       string   `env:"AMAZON_REGION" envDefault:"us-east-1" validate:"required"`
	Host         string   `env:"AMAZON_HOST" envDefault:"webservices.amazon.com"`
	Marketplace  string   `env:"AMAZON_MARKETPLACE" envDefault:"www.amazon.com"`
	BaseURL      string   `env:"AMAZON_BASE_URL" validate:"url"`
	Categories   []string `env:"AMAZON_CATEGORIES" envSeparator:","`
}

// AxessoConfig covers the RapidAPI key shared by both proxies and the Amazon proxy endpoint.
type AxessoConfig struct {
	APIKey     string `env:"RAPIDAPI_KEY"`
	Host       string `env:"RAPIDAPI_HOST" envDefault:"axesso-amazon-data-service1.p.rapidapi.com"`
	BaseURL    string `env:"AXESSO_AMAZON_BASE_URL" validate:"url"`
	MaxItems   int    `env:"AXESSO_AMAZON_MAX_ITEMS" envDefault:"40"`
	DefaultTag string `env:"AXESSO_DEFAULT_TAG" envDefault:"souvenirspartan-20"`
}

type WalmartConfig struct {
	Host       string   `env:"WALMART_RAPIDAPI_HOST" envDefault:"axesso-walmart-data-service.p.rapidapi.com"`
	SearchPath string   `env:"WALMART_SEARCH_PATH" envDefault:"/wlm/walmart-search-by-keyword" validate:"startswith=/"`
	BaseURL    string   `env:"WALMART_BASE_URL" validate:"url"`
	PartnerID  string   `env:"WALMART_PARTNER_ID"`
	MaxItems   int      `env:"WALMART_MAX_ITEMS" envDefault:"40"`
	Categories []string `env:"WALMART_CATEGORIES" envSeparator:","`
}

type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	// Container, when set, also appends JSON log lines to a blob in this container
	// using the storage account from FixturesConfig.
	Container string `env:"LOG_CONTAINER"`
}

// Routing is the immutable input the source router resolves against.
type Routing struct {
	WalmartCategories []catalog.Category
	AmazonCategories  []catalog.Category
	HasAmazonKeys     bool
	HasProxyKey       bool
}

// Load reads .env (if present) and the process environment once.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv parses the process environment without touching .env.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.fillDerived()
	if cfg.UpstreamTimeout <= 0 {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", cfg.UpstreamTimeout)
	}
	if cfg.Fixtures.Readers < 1 {
		cfg.Fixtures.Readers = 1
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) fillDerived() {
	if c.Amazon.BaseURL == "" {
		c.Amazon.BaseURL = "https://" + c.Amazon.Host
	}
	if c.Axesso.BaseURL == "" {
		c.Axesso.BaseURL = "https://" + c.Axesso.Host
	}
	if c.Walmart.BaseURL == "" {
		c.Walmart.BaseURL = "https://" + c.Walmart.Host
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Server.Addr == "" {
		c.Server.Addr = ":" + c.Server.Port
	}
}

// HasAmazonKeys reports whether all three native credentials are present.
func (a AmazonConfig) HasAmazonKeys() bool {
	return hasVal(a.AccessKey) && hasVal(a.SecretKey) && hasVal(a.AssociateTag)
}

func (a AxessoConfig) HasKey() bool {
	return hasVal(a.APIKey)
}

// ProxyTag is the tag the Amazon proxy appends: the associate tag when configured, else the default.
func (c *Config) ProxyTag() string {
	if hasVal(c.Amazon.AssociateTag) {
		return strings.TrimSpace(c.Amazon.AssociateTag)
	}
	return c.Axesso.DefaultTag
}

// Routing derives the router inputs. An empty Walmart list means every category once a proxy key exists.
func (c *Config) Routing() Routing {
	r := Routing{
		WalmartCategories: ParseCategories(c.Walmart.Categories),
		AmazonCategories:  ParseCategories(c.Amazon.Categories),
		HasAmazonKeys:     c.Amazon.HasAmazonKeys(),
		HasProxyKey:       c.Axesso.HasKey(),
	}
	if len(r.WalmartCategories) == 0 && r.HasProxyKey {
		r.WalmartCategories = append([]catalog.Category(nil), catalog.Categories...)
	}
	return r
}

// ParseCategories normalizes a comma separated list, dropping blanks, duplicates and unknown names.
func ParseCategories(raw []string) []catalog.Category {
	parsed := lo.FilterMap(raw, func(s string, _ int) (catalog.Category, bool) {
		c, ok := catalog.ParseCategory(s)
		if !ok && strings.TrimSpace(s) != "" {
			slog.Warn("ignoring unknown category in configuration", "category", s)
		}
		return c, ok
	})
	return lo.Uniq(parsed)
}

// SlogLevel maps LOG_LEVEL onto slog levels; unknown values are info.
func (l LoggingConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func hasVal(s string) bool {
	return strings.TrimSpace(s) != ""
}
