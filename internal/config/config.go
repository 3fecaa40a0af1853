package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	AppName               = "taskterm"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	DefaultLogName        = "todo.log"
)

type Keymap struct {
	Quit      string `toml:"quit"`
	Add       string `toml:"add"`
	Edit      string `toml:"edit"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Toggle    string `toml:"toggle"`
	Priority  string `toml:"priority"`
	Delete    string `toml:"delete"`
	Sort      string `toml:"sort"`
	NextField string `toml:"next_field"`
	Confirm   string `toml:"confirm"`
	Cancel    string `toml:"cancel"`
}

type Config struct {
	DBPath      string `toml:"db_path"`
	LogPath     string `toml:"log_path"`
	LogLevel    string `toml:"log_level"`
	DefaultSort string `toml:"default_sort"`
	Keys        Keymap `toml:"keys"`
}

// ResolveConfigPath returns $XDG_CONFIG_HOME/taskterm/config.toml (or the
// platform equivalent), falling back to the working directory.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first
// when the file does not exist. Relative data paths resolve against the
// config file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.LogPath == "" {
		cfg.LogPath = DefaultLogName
	}
	cfg.Keys = cfg.Keys.withDefaults(defaultConfig().Keys)
	return cfg.resolve(filepath.Dir(path)), nil
}

func (c Config) resolve(dir string) Config {
	if !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(dir, c.DBPath)
	}
	if !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(dir, c.LogPath)
	}
	return c
}

// withDefaults fills bindings left blank in the file.
func (k Keymap) withDefaults(d Keymap) Keymap {
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return Keymap{
		Quit:      pick(k.Quit, d.Quit),
		Add:       pick(k.Add, d.Add),
		Edit:      pick(k.Edit, d.Edit),
		Up:        pick(k.Up, d.Up),
		Down:      pick(k.Down, d.Down),
		Toggle:    pick(k.Toggle, d.Toggle),
		Priority:  pick(k.Priority, d.Priority),
		Delete:    pick(k.Delete, d.Delete),
		Sort:      pick(k.Sort, d.Sort),
		NextField: pick(k.NextField, d.NextField),
		Confirm:   pick(k.Confirm, d.Confirm),
		Cancel:    pick(k.Cancel, d.Cancel),
	}
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:      DefaultDBName,
		LogPath:     DefaultLogName,
		LogLevel:    "info",
		DefaultSort: "none",
		Keys: Keymap{
			Quit:      "q",
			Add:       "a",
			Edit:      "e",
			Up:        "k",
			Down:      "j",
			Toggle:    " ",
			Priority:  "p",
			Delete:    "d",
			Sort:      "s",
			NextField: "tab",
			Confirm:   "enter",
			Cancel:    "esc",
		},
	}
}
