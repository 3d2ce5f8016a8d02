package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port            string
	DBDSN           string
	LogFile         string
	CartServiceURL  string
	CORSOrigins     []string
	DefaultPageSize int
	MaxPageSize     int
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "prodcat.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")

	// Empty CART_SERVICE_URL disables outbound cart webhooks.
	cartURL := strings.TrimRight(os.Getenv("CART_SERVICE_URL"), "/")

	origins := []string{"http://localhost:3000", "http://localhost:5173", "http://localhost:8080"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			o = strings.TrimSpace(o)
			if o == "*" {
				// Wildcard swallows any explicit origins and cannot be
				// combined with credentials.
				origins = []string{"*"}
				break
			}
			if o != "" {
				origins = append(origins, o)
			}
		}
	}

	cfg := Config{
		Port:            port,
		DBDSN:           dsn,
		LogFile:         logFile,
		CartServiceURL:  cartURL,
		CORSOrigins:     origins,
		DefaultPageSize: intEnv("DEFAULT_PAGE_SIZE", 20),
		MaxPageSize:     intEnv("MAX_PAGE_SIZE", 1000),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s CART_SERVICE_URL=%s DEFAULT_PAGE_SIZE=%d MAX_PAGE_SIZE=%d",
		cfg.Port, cfg.DBDSN, cfg.CartServiceURL, cfg.DefaultPageSize, cfg.MaxPageSize)
	return cfg
}

// CORSWildcard reports whether the configured origins are the wildcard.
// fiber's cors middleware refuses "*" together with credentials.
func (c Config) CORSWildcard() bool {
	return len(c.CORSOrigins) == 1 && c.CORSOrigins[0] == "*"
}

func intEnv(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		log.Printf("[config] ignoring invalid %s=%q", key, raw)
		return def
	}
	return n
}
