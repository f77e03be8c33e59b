// Package config provides YAML-based configuration for the metagrid
// terminal game.
package config

import "github.com/vmordasov/metagrid/internal/engine"

// Config is the top-level configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	UI      UIConfig      `yaml:"ui"`
	Storage StorageConfig `yaml:"storage"`
}

// GameConfig holds rule parameters.
type GameConfig struct {
	// Size is the grid dimension N: an NxN meta grid of NxN boards.
	Size int `yaml:"size"`
}

// UIConfig holds presentation preferences.
type UIConfig struct {
	ShowHelp     bool `yaml:"show_help"`     // Render the key help footer
	HighContrast bool `yaml:"high_contrast"` // Brighter board highlighting
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	DBPath   string `yaml:"db_path"`
	Autosave bool   `yaml:"autosave"` // Save the game after every move
}

// MaxSize caps the grid dimension so an N^2 x N^2 cell grid still fits a
// typical terminal. The engine itself has no upper bound.
const MaxSize = 6

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{Size: engine.DefaultSize},
		UI: UIConfig{
			ShowHelp: true,
		},
		Storage: StorageConfig{
			DBPath:   "~/.metagrid/metagrid.db",
			Autosave: true,
		},
	}
}

// Normalize clamps loaded values into usable ranges. Bad input is corrected,
// never rejected.
func (c *Config) Normalize() {
	c.Game.Size = engine.NormalizeSize(c.Game.Size)
	if c.Game.Size > MaxSize {
		c.Game.Size = MaxSize
	}
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = Default().Storage.DBPath
	}
}
