package commands

import (
	"database/sql"
	"os"
	"strings"

	"hudsmenu-backend/lib/configutil"
	"hudsmenu-backend/lib/sqliteutil"
	"hudsmenu-backend/services/menu"
	"hudsmenu-backend/services/menu/history"
	"hudsmenu-backend/services/menu/store"
)

type HttpConfig struct {
	Port int `json:"port"`
}

type MenuConfig struct {
	BaseUrl   string `json:"base_url"`
	CacheDir  string `json:"cache_dir"`
	HistoryDb string `json:"history_db"`
}

type Config struct {
	Http HttpConfig `json:"http"`
	Menu MenuConfig `json:"menu"`
	// cron spec in America/New_York, defaults to 7 AM daily
	DailyCron string               `json:"daily_cron"`
	Notifier  menu.NotifierOptions `json:"notifier"`
}

// readConfig loads config.json5 (+ .local override). A missing file is
// fine: everything has a default, secrets can come from the environment.
func readConfig() (Config, error) {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}

	if cfg.Http.Port == 0 {
		cfg.Http.Port = 8000
	}
	if cfg.Menu.CacheDir == "" {
		cfg.Menu.CacheDir = "data"
	}
	if cfg.Menu.HistoryDb == "" {
		cfg.Menu.HistoryDb = "data/history.db"
	}
	if cfg.DailyCron == "" {
		cfg.DailyCron = "0 7 * * *"
	}

	if v := os.Getenv("HUDSMENU_CACHE_DIR"); v != "" {
		cfg.Menu.CacheDir = v
	}
	if v := os.Getenv("HUDSMENU_SMTP_PASSWORD"); v != "" {
		cfg.Notifier.Smtp.Password = v
	}
	if v := os.Getenv("HUDSMENU_RECIPIENTS"); v != "" {
		cfg.Notifier.Recipients = nil
		for _, r := range strings.Split(v, ",") {
			r = strings.TrimSpace(r)
			if r != "" {
				cfg.Notifier.Recipients = append(cfg.Notifier.Recipients, r)
			}
		}
	}

	return cfg, nil
}

func buildService(cfg Config) (menu.Service, *sql.DB, error) {
	fileStore, err := store.NewFileStore(cfg.Menu.CacheDir)
	if err != nil {
		return menu.Service{}, nil, err
	}

	db, err := sqliteutil.OpenDB(history.Schema, cfg.Menu.HistoryDb)
	if err != nil {
		return menu.Service{}, nil, err
	}
	archive := history.NewArchive(db)

	fetcher := menu.NewHttpFetcher(cfg.Menu.BaseUrl)
	return menu.NewService(fetcher, fileStore, &archive), db, nil
}
