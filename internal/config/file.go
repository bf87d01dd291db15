package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/imdario/mergo"
)

// fileConfig mirrors Config's field set but with pointer/omitted
// semantics so a config file can leave fields unset without clobbering
// defaults, per spec.md §6 ("all fields are optional").
type fileConfig struct {
	IntervalMS *int    `toml:"interval_ms" json:"interval_ms"`
	Timestamp  *bool   `toml:"timestamp" json:"timestamp"`
	ColourLogs *bool   `toml:"colour_logs" json:"colour_logs"`
	RawLogs    *bool   `toml:"raw_logs" json:"raw_logs"`
	ShowSelf   *bool   `toml:"show_self" json:"show_self"`
	ShowGui    *bool   `toml:"show_gui" json:"show_gui"`
	Host       *string `toml:"host" json:"host"`
	NoStderr   *bool   `toml:"no_stderr" json:"no_stderr"`
	SaveDir    *string `toml:"save_dir" json:"save_dir"`
	UseCLI     *bool   `toml:"use_cli" json:"use_cli"`

	Colors map[string]string   `toml:"colors" json:"colors"`
	Keymap map[string][]string `toml:"keymap" json:"keymap"`
}

// LoadFile parses a .toml/.json/.jsonc file at path and merges it over
// base, returning the merged result. Parse failures return an error so
// the caller can fall back to defaults per spec.md §7's "Config parse
// failures" policy.
func LoadFile(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(raw, &fc); err != nil {
			return base, err
		}
	case ".json":
		if err := json.Unmarshal(raw, &fc); err != nil {
			return base, err
		}
	case ".jsonc":
		if err := json.Unmarshal(stripJSONC(raw), &fc); err != nil {
			return base, err
		}
	default:
		return base, fmt.Errorf("config: unsupported file extension %q", ext)
	}

	return mergeFile(base, fc)
}

func mergeFile(base Config, fc fileConfig) (Config, error) {
	overlay := base
	if fc.IntervalMS != nil {
		overlay.IntervalMS = *fc.IntervalMS
	}
	if fc.Timestamp != nil {
		overlay.Timestamp = *fc.Timestamp
	}
	if fc.ColourLogs != nil {
		overlay.ColourLogs = *fc.ColourLogs
	}
	if fc.RawLogs != nil {
		overlay.RawLogs = *fc.RawLogs
	}
	if fc.ShowSelf != nil {
		overlay.ShowSelf = *fc.ShowSelf
	}
	if fc.ShowGui != nil {
		overlay.ShowGui = *fc.ShowGui
	}
	if fc.Host != nil {
		overlay.Host = *fc.Host
	}
	if fc.NoStderr != nil {
		overlay.NoStderr = *fc.NoStderr
	}
	if fc.SaveDir != nil {
		overlay.SaveDir = *fc.SaveDir
	}
	if fc.UseCLI != nil {
		overlay.UseCLI = *fc.UseCLI
	}

	colorOverlay := colorsFromTable(fc.Colors)
	if err := mergo.Merge(&colorOverlay, overlay.Colors); err != nil {
		return base, err
	}
	overlay.Colors = colorOverlay

	if fc.Keymap != nil {
		keymapOverlay := Keymap(fc.Keymap)
		if err := mergo.Merge(&keymapOverlay, overlay.Keymap); err != nil {
			return base, err
		}
		overlay.Keymap = keymapOverlay
	}

	return overlay, nil
}

// colorsFromTable maps the config file's free-form `colors` table onto
// Colors by field name; unrecognised keys are ignored per spec.md §6.
func colorsFromTable(table map[string]string) Colors {
	var c Colors
	for k, v := range table {
		switch k {
		case "borders":
			c.Borders = v
		case "chart_cpu":
			c.ChartCPU = v
		case "chart_memory":
			c.ChartMemory = v
		case "chart_ports":
			c.ChartPorts = v
		case "commands":
			c.Commands = v
		case "container_state":
			c.ContainerState = v
		case "containers":
			c.Containers = v
		case "headers_bar":
			c.HeadersBar = v
		case "popup_border":
			c.PopupBorder = v
		case "popup_text":
			c.PopupText = v
		}
	}
	return c
}

var (
	jsoncBlockComment = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	jsoncLineComment  = regexp.MustCompile(`//[^\n]*`)
)

// stripJSONC removes // and /* */ comments so the result parses with the
// standard library's encoding/json, the way a CLI tool with
// "humanised" JSON config typically handles .jsonc.
func stripJSONC(raw []byte) []byte {
	out := jsoncBlockComment.ReplaceAll(raw, nil)
	out = jsoncLineComment.ReplaceAll(out, nil)
	return out
}

// WriteExample writes the default configuration as TOML to dir/example-config.toml,
// for the "config parse failure" / "--config" recovery path (spec.md §7).
func WriteExample(dir string) (string, error) {
	path := filepath.Join(dir, "example-config.toml")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(exampleFileConfig()); err != nil {
		return "", err
	}
	return path, nil
}

func exampleFileConfig() map[string]any {
	d := Default()
	return map[string]any{
		"interval_ms": d.IntervalMS,
		"timestamp":   d.Timestamp,
		"colour_logs": d.ColourLogs,
		"raw_logs":    d.RawLogs,
		"show_self":   d.ShowSelf,
		"show_gui":    d.ShowGui,
		"no_stderr":   d.NoStderr,
		"save_dir":    d.SaveDir,
		"use_cli":     d.UseCLI,
		"colors": map[string]string{
			"borders":         d.Colors.Borders,
			"chart_cpu":       d.Colors.ChartCPU,
			"chart_memory":    d.Colors.ChartMemory,
			"chart_ports":     d.Colors.ChartPorts,
			"commands":        d.Colors.Commands,
			"container_state": d.Colors.ContainerState,
			"containers":      d.Colors.Containers,
			"headers_bar":     d.Colors.HeadersBar,
			"popup_border":    d.Colors.PopupBorder,
			"popup_text":      d.Colors.PopupText,
		},
		"keymap": map[string][]string(d.Keymap),
	}
}
