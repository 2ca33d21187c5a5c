package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/djb242/inkwell/internal/persist"
)

// Config for the TUI binary. Sync fields are optional; when SyncURL is
// empty the app runs purely local.
type Config struct {
	DBPath    string
	SyncURL   string
	SyncToken string
	AccountID string
	Debug     bool
	DebugFile string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	dbPath := getenv("INKWELL_DB", "")
	if dbPath == "" {
		p, err := persist.DefaultPath()
		if err != nil {
			return Config{}, err
		}
		dbPath = p
	}

	return Config{
		DBPath:    dbPath,
		SyncURL:   getenv("INKWELL_SYNC_URL", ""),
		SyncToken: getenv("INKWELL_SYNC_TOKEN", ""),
		AccountID: getenv("INKWELL_ACCOUNT_ID", ""),
		Debug:     getenv("INKWELL_DEBUG", "") == "1",
		DebugFile: getenv("INKWELL_DEBUG_FILE", ""),
	}, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
