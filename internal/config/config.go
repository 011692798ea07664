package config

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// AggregateCategory is the pseudo-category representing the union of all
// concrete categories. Every catalogued article is implicitly a member.
const AggregateCategory = "news"

// CategoryConfig represents configuration for a single concrete category
type CategoryConfig struct {
	Upstream string   // upstream category name for the headlines API
	FeedURLs []string // RSS feed URLs when FEED_SOURCE=rss
}

// SecurityConfig represents security configuration
type SecurityConfig struct {
	EnableRateLimit       bool
	RateLimitPerSecond    float64
	RateLimitBurst        int
	EnableCORS            bool
	AllowedOrigins        []string
	EnableSecurityHeaders bool
	MaxRequestSize        int64
	EnableRequestID       bool
}

type Config struct {
	Port             int
	DataDir          string
	CacheTTL         time.Duration
	PollInterval     time.Duration
	FeedTimeout      time.Duration
	FeedSource       string
	NewsAPIKey       string
	NewsAPIBaseURL   string
	TrendingCategory string
	DefaultPageSize  int
	MaxPageSize      int
	Categories       map[string]CategoryConfig
	EnableSwagger    bool
	Security         SecurityConfig
}

func Load() *Config {
	categories := loadCategoriesFromEnv()
	if len(categories) == 0 {
		categories = getDefaultCategories()
	}

	return &Config{
		Port:             getEnvAsInt("PORT", 8080),
		DataDir:          getEnv("DATA_DIR", "./data"),
		CacheTTL:         getEnvAsDuration("CACHE_TTL", 15*time.Minute),
		PollInterval:     getEnvAsDuration("POLL_INTERVAL", 15*time.Minute),
		FeedTimeout:      getEnvAsDuration("FEED_TIMEOUT", 10*time.Second),
		FeedSource:       getEnv("FEED_SOURCE", "newsapi"),
		NewsAPIKey:       getEnv("NEWSAPI_KEY", ""),
		NewsAPIBaseURL:   getEnv("NEWSAPI_BASE_URL", "https://newsapi.org/v2"),
		TrendingCategory: getEnv("TRENDING_CATEGORY", "general"),
		DefaultPageSize:  getEnvAsInt("DEFAULT_PAGE_SIZE", 10),
		MaxPageSize:      getEnvAsInt("MAX_PAGE_SIZE", 100),
		Categories:       categories,
		EnableSwagger:    getEnvAsBool("ENABLE_SWAGGER", true),
		Security:         loadSecurityConfig(),
	}
}

// ConcreteCategories returns the configured category names, sorted
func (c *Config) ConcreteCategories() []string {
	names := make([]string, 0, len(c.Categories))
	for name := range c.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func loadSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableRateLimit:       getEnvAsBool("ENABLE_RATE_LIMIT", true),
		RateLimitPerSecond:    getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10.0),
		RateLimitBurst:        getEnvAsInt("RATE_LIMIT_BURST", 20),
		EnableCORS:            getEnvAsBool("ENABLE_CORS", true),
		AllowedOrigins:        getEnvAsStringSlice("ALLOWED_ORIGINS", []string{"*"}),
		EnableSecurityHeaders: getEnvAsBool("ENABLE_SECURITY_HEADERS", true),
		MaxRequestSize:        getEnvAsInt64("MAX_REQUEST_SIZE", 1<<20), // 1MB, JSON bodies only
		EnableRequestID:       getEnvAsBool("ENABLE_REQUEST_ID", true),
	}
}

func loadCategoriesFromEnv() map[string]CategoryConfig {
	categories := make(map[string]CategoryConfig)

	// Look for NEWS_CATEGORY_* environment variables
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, "NEWS_CATEGORY_") {
			continue
		}
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}

		name := strings.ToLower(strings.TrimPrefix(parts[0], "NEWS_CATEGORY_"))
		if name == "" || name == AggregateCategory {
			continue
		}

		upstream, urls := parseCategoryValue(parts[1])
		if upstream == "" {
			upstream = name
		}
		categories[name] = CategoryConfig{Upstream: upstream, FeedURLs: urls}
	}

	return categories
}

func parseCategoryValue(value string) (string, []string) {
	// Format: "upstream|url1,url2,url3"
	// If no feed URLs are needed, just the upstream name: "upstream"
	parts := strings.Split(value, "|")
	upstream := strings.TrimSpace(parts[0])

	var urls []string
	if len(parts) > 1 {
		for _, url := range strings.Split(parts[1], ",") {
			if trimmed := strings.TrimSpace(url); trimmed != "" {
				urls = append(urls, trimmed)
			}
		}
	}

	return upstream, urls
}

func getDefaultCategories() map[string]CategoryConfig {
	return map[string]CategoryConfig{
		"general": {
			Upstream: "general",
			FeedURLs: []string{"https://feeds.npr.org/1001/rss.xml"},
		},
		"technology": {
			Upstream: "technology",
			FeedURLs: []string{"https://feeds.arstechnica.com/arstechnica/index"},
		},
		"business": {
			Upstream: "business",
			FeedURLs: []string{"https://feeds.npr.org/1006/rss.xml"},
		},
		"science": {
			Upstream: "science",
			FeedURLs: []string{"https://feeds.npr.org/1007/rss.xml"},
		},
		"health": {
			Upstream: "health",
			FeedURLs: []string{"https://feeds.npr.org/1128/rss.xml"},
		},
		"sports": {
			Upstream: "sports",
			FeedURLs: []string{"https://feeds.npr.org/1055/rss.xml"},
		},
	}
}

func getEnv(key string, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.ParseInt(val, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsStringSlice(key string, defaultVal []string) []string {
	if val := os.Getenv(key); val != "" {
		items := strings.Split(val, ",")
		for i := range items {
			items[i] = strings.TrimSpace(items[i])
		}
		return items
	}
	return defaultVal
}
