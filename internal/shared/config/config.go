package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

// AppEnv represents the application environment
// ENUM(local,production,development,testing)
type AppEnv string

// StorageDriver selects the persistence backend
// ENUM(file,sqlite)
type StorageDriver string

type Config struct {
	TelegramBotToken  string              `koanf:"telegram_bot_token"`
	TelegramAPIURL    string              `koanf:"telegram_api_url"`
	AdminIDs          []int64             `koanf:"-"`
	StorageDriver     StorageDriver       `koanf:"-"`
	StoragePath       string              `koanf:"storage_path"`
	SQLiteDSN         string              `koanf:"sqlite_dsn"`
	HTTPPort          string              `koanf:"http_port"`
	DispatchWorkers   int                 `koanf:"dispatch_workers"`
	DispatchQueueSize int                 `koanf:"dispatch_queue_size"`
	DispatchRateLimit float64             `koanf:"dispatch_rate_limit"`
	AppEnv            AppEnv              `koanf:"-"`
	Synonyms          map[string][]string `koanf:"synonyms"`
}

// DefaultConfigFiles are probed in order when no explicit path is given.
var DefaultConfigFiles = []string{
	"config.yaml",
	"config.yml",
	"config.json",
	"config.toml",
}

// Load reads configuration from the first config file found (or path, when
// non-empty) and then from the environment, which overrides file values.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	configFile, found := path, path != ""
	if !found {
		configFile, found = lo.Find(DefaultConfigFiles, func(file string) bool {
			_, err := os.Stat(file)
			return err == nil
		})
	}

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// TELEGRAM_BOT_TOKEN -> telegram_bot_token
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	defaults := map[string]any{
		"telegram_api_url":    "https://api.telegram.org",
		"storage_driver":      string(StorageDriverFile),
		"storage_path":        "./data",
		"sqlite_dsn":          "file:devradar.db?cache=shared&mode=rwc&_txlock=immediate",
		"http_port":           "8080",
		"dispatch_workers":    8,
		"dispatch_queue_size": 64,
		"dispatch_rate_limit": 25,
		"app_env":             string(AppEnvProduction),
	}
	for key, value := range defaults {
		if !k.Exists(key) {
			if err := k.Set(key, value); err != nil {
				return nil, oops.With("key", key).Wrap(err)
			}
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// admin_ids arrive as a comma-separated string from env vars and as a
	// list from config files
	if adminIDs := k.Get("admin_ids"); adminIDs != nil {
		switch v := adminIDs.(type) {
		case string:
			cfg.AdminIDs = ParseAdminIDs(v)
		case int:
			cfg.AdminIDs = []int64{int64(v)}
		case int64:
			cfg.AdminIDs = []int64{v}
		case float64:
			cfg.AdminIDs = []int64{int64(v)}
		case []interface{}:
			cfg.AdminIDs = lo.FilterMap(v, func(item interface{}, _ int) (int64, bool) {
				switch val := item.(type) {
				case int64:
					return val, true
				case int:
					return int64(val), true
				case float64:
					return int64(val), true
				case string:
					ids := ParseAdminIDs(val)
					return lo.FirstOr(ids, 0), len(ids) == 1
				default:
					return 0, false
				}
			})
		}
	}

	appEnv, err := ParseAppEnv(k.String("app_env"))
	if err != nil {
		appEnv = AppEnvProduction
	}
	cfg.AppEnv = appEnv

	driver, err := ParseStorageDriver(k.String("storage_driver"))
	if err != nil {
		return nil, oops.With("storage_driver", k.String("storage_driver")).Wrap(errors.ErrUnsupportedStorage)
	}
	cfg.StorageDriver = driver

	if cfg.TelegramBotToken == "" {
		return nil, errors.ErrMissingBotToken
	}
	if cfg.DispatchWorkers < 1 {
		cfg.DispatchWorkers = 1
	}
	if cfg.DispatchQueueSize < 1 {
		cfg.DispatchQueueSize = 1
	}

	return &cfg, nil
}

// IsAdmin reports whether userID is on the admin allow-list.
func (c *Config) IsAdmin(userID int64) bool {
	return lo.Contains(c.AdminIDs, userID)
}

// ParseAdminIDs parses comma-separated user IDs string into []int64
func ParseAdminIDs(s string) []int64 {
	if s == "" {
		return []int64{}
	}
	parts := strings.Split(s, ",")
	return lo.FilterMap(parts, func(part string, _ int) (int64, bool) {
		part = strings.TrimSpace(part)
		if part == "" {
			return 0, false
		}
		var id int64
		if _, err := fmt.Sscanf(part, "%d", &id); err == nil {
			return id, true
		}
		return 0, false
	})
}
