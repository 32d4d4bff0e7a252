// Package config loads and saves the engine's two persisted
// documents: the window/terminal/font Config and the key/action
// Keybindings, both plain TOML keyed by stable string identifiers.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bloeys/tessera/internal/engineerr"
	"github.com/bloeys/tessera/internal/input"
)

// WindowKind selects the host windowing backend. Only one is
// implemented (SDL2), but the field is kept so a config file is
// forward-compatible with a future backend.
type WindowKind string

const WindowKindSDL2 WindowKind = "sdl2"

// Config is the engine's top-level persisted configuration: window
// kind, the font asset to build an atlas from, terminal/tile pixel
// dimensions, frame pacing, and feature flags.
type Config struct {
	WindowKind WindowKind `toml:"window_kind"`
	FontPath   string     `toml:"font_path"`

	TerminalCols int `toml:"terminal_cols"`
	TerminalRows int `toml:"terminal_rows"`

	TileWidth  int `toml:"tile_width"`
	TileHeight int `toml:"tile_height"`

	FrameIntervalMs int `toml:"frame_interval_ms"`

	VSync     bool `toml:"vsync"`
	DebugGrid bool `toml:"debug_grid"`
	LimitFPS  bool `toml:"limit_fps"`
}

// FrameInterval returns the configured frame interval as a
// time.Duration.
func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// Default returns a Config with reasonable out-of-the-box values.
func Default() Config {
	return Config{
		WindowKind:      WindowKindSDL2,
		FontPath:        "./resources/fonts/default.ttf",
		TerminalCols:    80,
		TerminalRows:    40,
		TileWidth:       16,
		TileHeight:      16,
		FrameIntervalMs: 16,
		VSync:           false,
		LimitFPS:        true,
	}
}

// Validate reports whether c's fields are usable, returning an
// engineerr.KindInvalidConfig error describing the first problem
// found.
func (c Config) Validate() error {
	switch {
	case c.TerminalCols <= 0 || c.TerminalRows <= 0:
		return engineerr.New(engineerr.KindInvalidConfig, errInvalid("terminal dimensions must be positive"))
	case c.TileWidth <= 0 || c.TileHeight <= 0:
		return engineerr.New(engineerr.KindInvalidConfig, errInvalid("tile dimensions must be positive"))
	case c.FontPath == "":
		return engineerr.New(engineerr.KindInvalidConfig, errInvalid("font_path must be set"))
	}
	return nil
}

// Load reads and decodes a Config from path.
func Load(path string) (Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		if os.IsNotExist(err) {
			return Config{}, engineerr.New(engineerr.KindAssetNotFound, err)
		}
		return Config{}, engineerr.New(engineerr.KindAssetParseError, err)
	}
	return c, nil
}

// Save encodes c as TOML to path.
func Save(path string, c Config) error {
	f, err := os.Create(path)
	if err != nil {
		return engineerr.New(engineerr.KindAssetNotFound, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return engineerr.New(engineerr.KindAssetParseError, err)
	}
	return nil
}

// Keybindings maps a stable identifier (e.g. "move_north",
// "toggle_debug") to the binding names that compose
// its Action. Names, not input.Action values, are what gets persisted
// since an Action's Bindings are interface values TOML can't decode
// directly; input.ActionFromNames realizes the actual Action.
type Keybindings struct {
	Actions map[string][]string `toml:"actions"`
}

// Action returns the realized input.Action for a bound identifier.
func (kb Keybindings) Action(id string) input.Action {
	return input.ActionFromNames(kb.Actions[id])
}

// DefaultKeybindings returns the engine's out-of-the-box bindings: the
// 4 cardinal movement directions plus a couple of UI actions.
func DefaultKeybindings() Keybindings {
	return Keybindings{
		Actions: map[string][]string{
			"move_north": {"Up"},
			"move_south": {"Down"},
			"move_east":  {"Right"},
			"move_west":  {"Left"},
			"quit":       {"Escape"},
		},
	}
}

// LoadKeybindings reads and decodes Keybindings from path.
func LoadKeybindings(path string) (Keybindings, error) {
	var kb Keybindings
	if _, err := toml.DecodeFile(path, &kb); err != nil {
		if os.IsNotExist(err) {
			return Keybindings{}, engineerr.New(engineerr.KindAssetNotFound, err)
		}
		return Keybindings{}, engineerr.New(engineerr.KindAssetParseError, err)
	}
	return kb, nil
}

// SaveKeybindings encodes kb as TOML to path.
func SaveKeybindings(path string, kb Keybindings) error {
	f, err := os.Create(path)
	if err != nil {
		return engineerr.New(engineerr.KindAssetNotFound, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(kb); err != nil {
		return engineerr.New(engineerr.KindAssetParseError, err)
	}
	return nil
}

type errInvalid string

func (e errInvalid) Error() string { return string(e) }
