package syncserver

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr           string
	DatabasePath       string
	JWTSecret          string
	CORSAllowedOrigins []string
}

func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		DatabasePath: getenv("DATABASE_PATH", "inkwell-sync.db"),
		JWTSecret:    mustGetenv("JWT_SECRET"),
	}

	for _, o := range strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}
	return cfg
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}
