package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Cards  CardsConfig
	Decks  []DeckConfig
	Table  TableConfig
	Piles  []PileConfig
	Server ServerConfig
	UI     UIConfig
}

// CardsConfig selects the card asset set.
type CardsConfig struct {
	SpriteURL string `mapstructure:"sprite_url"`
}

// DeckConfig describes one deck of the game.
type DeckConfig struct {
	Name      string
	BackColor string `mapstructure:"back_color"`
	Jokers    int
}

// TableConfig holds table-level presentation settings.
type TableConfig struct {
	Name   string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// PileConfig is the file form of a pile specification.
type PileConfig struct {
	Name      string
	Deck      string
	Invariant string
	Fanning   string
	X         float64
	Y         float64
	Rotation  float64
	FaceUp    bool `mapstructure:"face_up"`
	Shuffle   bool
}

// ServerConfig holds the browser backend settings.
type ServerConfig struct {
	Addr    string
	Origins []string
	// SpriteFile is a local copy of the card sprite sheet, served at the
	// path of cards.sprite_url.
	SpriteFile string `mapstructure:"sprite_file"`
}

// UIConfig holds terminal backend settings.
type UIConfig struct {
	// Scale is the number of table units per terminal column; rows are
	// twice as tall.
	Scale float64
}

func defaultPiles() []map[string]any {
	return []map[string]any{
		{"name": "A", "deck": "main", "invariant": "always", "fanning": "none", "x": 100, "y": 100, "face_up": true, "shuffle": true},
		{"name": "B", "invariant": "always", "fanning": "none", "x": 300, "y": 100},
	}
}

// Load reads configuration from file and env. Env var overrides use prefix PLAYINGCARDS_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("cards.sprite_url", "/svg-cards.svg")
	v.SetDefault("decks", []map[string]any{{"name": "main", "back_color": "maroon", "jokers": 0}})
	v.SetDefault("table.name", "table")
	v.SetDefault("table.x", 0)
	v.SetDefault("table.y", 0)
	v.SetDefault("table.width", 800)
	v.SetDefault("table.height", 600)
	v.SetDefault("piles", defaultPiles())
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.origins", []string{"http://localhost:8080", "http://127.0.0.1:8080"})
	v.SetDefault("server.sprite_file", "")
	v.SetDefault("ui.scale", 8)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PLAYINGCARDS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "playingcards"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PLAYINGCARDS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present; an explicit path must exist
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to path, creating the directory if needed.
func Save(cfg Config, path string) error {
	if path == "" {
		path = os.Getenv("PLAYINGCARDS_CONFIG")
	}
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "playingcards", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("cards.sprite_url", cfg.Cards.SpriteURL)
	decks := make([]map[string]any, 0, len(cfg.Decks))
	for _, d := range cfg.Decks {
		decks = append(decks, map[string]any{"name": d.Name, "back_color": d.BackColor, "jokers": d.Jokers})
	}
	v.Set("decks", decks)
	v.Set("table.name", cfg.Table.Name)
	v.Set("table.x", cfg.Table.X)
	v.Set("table.y", cfg.Table.Y)
	v.Set("table.width", cfg.Table.Width)
	v.Set("table.height", cfg.Table.Height)
	piles := make([]map[string]any, 0, len(cfg.Piles))
	for _, p := range cfg.Piles {
		piles = append(piles, map[string]any{
			"name":      p.Name,
			"deck":      p.Deck,
			"invariant": p.Invariant,
			"fanning":   p.Fanning,
			"x":         p.X,
			"y":         p.Y,
			"rotation":  p.Rotation,
			"face_up":   p.FaceUp,
			"shuffle":   p.Shuffle,
		})
	}
	v.Set("piles", piles)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("server.origins", cfg.Server.Origins)
	v.Set("server.sprite_file", cfg.Server.SpriteFile)
	v.Set("ui.scale", cfg.UI.Scale)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
