// Package config resolves the CLI surface and the config file layering
// described in spec.md §6. Grounded on the teacher's pkg/config: CLI
// flags via flaggy (main.go), config directory resolution via
// github.com/OpenPeeDeeP/xdg (pkg/config/app_config.go's configDirForVendor),
// with the file format widened from YAML to TOML/JSON/JSONC per
// SPEC_FULL.md, and defaults layered under user overrides with
// github.com/imdario/mergo instead of a second Unmarshal pass.
package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config is the fully resolved, post-merge configuration the rest of the
// application reads (spec.md §6's CLI surface plus the colour/keymap
// tables carried only by the config file).
type Config struct {
	IntervalMS int
	Timestamp  bool
	ColourLogs bool
	RawLogs    bool
	ShowSelf   bool
	ShowGui    bool
	Host       string
	NoStderr   bool
	SaveDir    string
	ConfigFile string
	UseCLI     bool

	Colors Colors
	Keymap Keymap

	ConfigDir string
	Debug     bool
}

// Colors is the colour table keyed by UI region (spec.md §6). Each slot
// is a colour name ("green", "default", ...); unknown names are ignored
// by the Renderer's theme resolver rather than rejected here.
type Colors struct {
	Borders        string
	ChartCPU       string
	ChartMemory    string
	ChartPorts     string
	Commands       string
	ContainerState string
	Containers     string
	HeadersBar     string
	PopupBorder    string
	PopupText      string
}

// Keymap maps an action name to up to two key labels (spec.md §6). Key
// labels are the same strings the teacher's keybindings.GetKey
// understands ("q", "<c-c>", "<enter>", ...).
type Keymap map[string][]string

// Default returns the built-in configuration, analogous to the teacher's
// GetDefaultConfig.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		IntervalMS: 1000,
		Timestamp:  true,
		ColourLogs: true,
		RawLogs:    false,
		ShowSelf:   false,
		ShowGui:    true,
		Host:       "",
		NoStderr:   false,
		SaveDir:    home,
		UseCLI:     false,
		Colors: Colors{
			Borders:        "white",
			ChartCPU:       "cyan",
			ChartMemory:    "green",
			ChartPorts:     "magenta",
			Commands:       "blue",
			ContainerState: "orange",
			Containers:     "white",
			HeadersBar:     "blue",
			PopupBorder:    "yellow",
			PopupText:      "white",
		},
		Keymap: defaultKeymap(),
	}
}

func defaultKeymap() Keymap {
	return Keymap{
		"quit":           {"q", "<c-c>"},
		"filter":         {"/", "<f1>"},
		"exec":           {"e"},
		"save_logs":      {"s"},
		"toggle_mouse":   {"m"},
		"help":           {"h"},
		"clear_error":    {"c"},
		"delete":         {"d"},
		"delete_confirm": {"y"},
		"delete_deny":    {"n"},
	}
}

// SaveFileName returns the path saved logs are written to, per spec.md
// §6: "<save_dir>/<name>_<unix_seconds>.log".
func SaveFileName(saveDir, name string, unixSeconds int64) string {
	return filepath.Join(saveDir, name+"_"+strconv.FormatInt(unixSeconds, 10)+".log")
}
