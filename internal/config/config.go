package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	AppName               = "myday"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "myday.db"
	DefaultLogName        = "myday.log"
	DefaultReminderLead   = "5m"
	DefaultSection        = "dashboard"

	EnvConfigPath = "MYDAY_CONFIG"
	EnvDBPath     = "MYDAY_DB_PATH"
	EnvLogLevel   = "MYDAY_LOG_LEVEL"
)

type Keymap struct {
	Quit        string `toml:"quit"`
	Add         string `toml:"add"`
	Up          string `toml:"up"`
	Down        string `toml:"down"`
	Toggle      string `toml:"toggle"`
	Delete      string `toml:"delete"`
	Edit        string `toml:"edit"`
	Confirm     string `toml:"confirm"`
	Cancel      string `toml:"cancel"`
	NextSection string `toml:"next_section"`
	PrevSection string `toml:"prev_section"`
	Theme       string `toml:"theme"`
	Rename      string `toml:"rename"`
	Reset       string `toml:"reset"`
}

type Config struct {
	DBPath         string `toml:"db_path"`
	LogPath        string `toml:"log_path"`
	LogLevel       string `toml:"log_level"`
	Notifications  bool   `toml:"notifications"`
	NotifyIcon     string `toml:"notify_icon"`
	ReminderLead   string `toml:"reminder_lead"`
	DefaultSection string `toml:"default_section"`
	Keys           Keymap `toml:"keys"`
}

// Lead parses ReminderLead, falling back to five minutes.
func (c Config) Lead() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.ReminderLead))
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// ResolveConfigPath honours MYDAY_CONFIG, then the user config dir, then the
// working directory.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return expandHome(p)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing defaults there on first
// launch. Relative paths inside the file resolve against its directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return finalize(cfg, path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return finalize(cfg, path), nil
}

func finalize(cfg Config, path string) Config {
	if v := strings.TrimSpace(os.Getenv(EnvDBPath)); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.ReminderLead == "" {
		cfg.ReminderLead = DefaultReminderLead
	}
	if cfg.DefaultSection == "" {
		cfg.DefaultSection = DefaultSection
	}
	fillKeys(&cfg.Keys)

	base := filepath.Dir(path)
	cfg.DBPath = resolvePath(base, cfg.DBPath)
	cfg.LogPath = resolvePath(base, cfg.LogPath)
	return cfg
}

func resolvePath(base, p string) string {
	if p == "" || strings.HasPrefix(p, "file:") {
		return p
	}
	p = expandHome(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// fillKeys restores defaults for bindings left empty in the file.
func fillKeys(k *Keymap) {
	d := defaultConfig().Keys
	pairs := []struct {
		dst *string
		def string
	}{
		{&k.Quit, d.Quit}, {&k.Add, d.Add}, {&k.Up, d.Up}, {&k.Down, d.Down},
		{&k.Toggle, d.Toggle}, {&k.Delete, d.Delete}, {&k.Edit, d.Edit},
		{&k.Confirm, d.Confirm}, {&k.Cancel, d.Cancel},
		{&k.NextSection, d.NextSection}, {&k.PrevSection, d.PrevSection},
		{&k.Theme, d.Theme}, {&k.Rename, d.Rename}, {&k.Reset, d.Reset},
	}
	for _, p := range pairs {
		if *p.dst == "" {
			*p.dst = p.def
		}
	}
}

func defaultConfig() Config {
	return Config{
		DBPath:         DefaultDBName,
		LogPath:        DefaultLogName,
		LogLevel:       "info",
		Notifications:  true,
		ReminderLead:   DefaultReminderLead,
		DefaultSection: DefaultSection,
		Keys: Keymap{
			Quit:        "q",
			Add:         "a",
			Up:          "k",
			Down:        "j",
			Toggle:      " ",
			Delete:      "d",
			Edit:        "e",
			Confirm:     "enter",
			Cancel:      "esc",
			NextSection: "tab",
			PrevSection: "shift+tab",
			Theme:       "t",
			Rename:      "n",
			Reset:       "R",
		},
	}
}
