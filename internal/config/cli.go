package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/OpenPeeDeeP/xdg"
	"github.com/integrii/flaggy"

	"github.com/oxker-go/oxker/internal/apperror"
)

// runtimeEnvVar is checked to detect that the process itself is running
// inside a container; Resolve uses it only to skip the example-config
// write on a parse failure (spec.md §7).
const runtimeEnvVar = "OXKER_RUNTIME"

// cliFlags holds the raw destinations flaggy writes into; Resolve
// converts these into overrides applied over the file-then-default
// layer, mirroring the teacher's main.go flag variables.
type cliFlags struct {
	intervalMS int
	timestamp  bool
	colourLogs bool
	rawLogs    bool
	showSelf   bool
	showGui    bool
	host       string
	noStderr   bool
	saveDir    string
	configFile string
	useCLI     bool
	printConf  bool
	debug      bool
}

// ParseFlags parses os.Args via flaggy, grounded on the teacher's
// main.go flag registration.
func ParseFlags(version string) (cliFlags, bool) {
	var f cliFlags
	f.timestamp = true
	f.colourLogs = true
	f.showGui = true

	flaggy.SetName("oxker")
	flaggy.SetDescription("a terminal UI for observing and controlling docker-compatible containers")
	flaggy.SetVersion(version)

	flaggy.Int(&f.intervalMS, "i", "interval-ms", "polling interval in milliseconds")
	flaggy.Bool(&f.timestamp, "t", "timestamp", "show timestamps on log lines")
	flaggy.Bool(&f.colourLogs, "", "colour-logs", "colourise log output")
	flaggy.Bool(&f.rawLogs, "r", "raw-logs", "show raw (uncoloured, unparsed) log output")
	flaggy.Bool(&f.showSelf, "", "show-self", "include oxker's own container, if running in one")
	flaggy.Bool(&f.showGui, "g", "show-gui", "show the terminal UI (disable for headless use)")
	flaggy.String(&f.host, "H", "host", "daemon host address, e.g. unix:///var/run/docker.sock")
	flaggy.Bool(&f.noStderr, "", "no-stderr", "exclude stderr from fetched logs")
	flaggy.String(&f.saveDir, "s", "save-dir", "directory saved logs are written to")
	flaggy.String(&f.configFile, "c", "config-file", "path to a config file (toml/json/jsonc)")
	flaggy.Bool(&f.useCLI, "", "use-cli", "shell out to the docker CLI instead of the daemon API")
	flaggy.Bool(&f.printConf, "", "print-config", "print the resolved configuration and exit")
	flaggy.Bool(&f.debug, "d", "debug", "enable development logging")

	flaggy.Parse()

	if f.rawLogs && f.colourLogs {
		f.colourLogs = false
	}

	return f, f.printConf
}

// apply overlays the CLI flags on c (flaggy leaves non-pointer
// bool/string/int defaults indistinguishable from "set to zero value").
// intervalMS, host, saveDir and configFile override c only when
// non-zero; every bool flag always overwrites c's value, so a bool set
// to true in the config file is reset to false unless its flag is given.
func (f cliFlags) apply(c Config) Config {
	if f.intervalMS != 0 {
		c.IntervalMS = f.intervalMS
	}
	c.Timestamp = f.timestamp
	c.ColourLogs = f.colourLogs
	c.RawLogs = f.rawLogs
	c.ShowSelf = f.showSelf
	c.ShowGui = f.showGui
	if f.host != "" {
		c.Host = f.host
	}
	c.NoStderr = f.noStderr
	if f.saveDir != "" {
		c.SaveDir = f.saveDir
	}
	if f.configFile != "" {
		c.ConfigFile = f.configFile
	}
	c.UseCLI = f.useCLI
	c.Debug = f.debug
	return c
}

// Resolve builds the final Config: defaults, layered with the config
// file (if one resolves), layered with explicit CLI flags, per spec.md
// §6. On a config-file parse failure it returns an empty Config and an
// apperror.Parse error, after writing an example config to the config
// dir outside container runs; it does not fall back to the defaults, and
// main.go exits on any error from Resolve.
func Resolve(version string) (Config, error) {
	flags, printOnly := ParseFlags(version)

	cfg := Default()
	cfg.ConfigDir = ResolveConfigDir()
	cfg.Debug = flags.debug

	configFile := flags.configFile
	if configFile == "" {
		configFile = defaultConfigFilePath(cfg.ConfigDir)
	}

	if _, err := os.Stat(configFile); err == nil {
		merged, ferr := LoadFile(configFile, cfg)
		if ferr != nil {
			if !IsContainerRuntime() {
				if path, werr := WriteExample(cfg.ConfigDir); werr == nil {
					return Config{}, apperror.Parse(fmt.Sprintf(
						"could not parse %s: %s (a fresh example was written to %s)",
						configFile, ferr.Error(), path))
				}
			}
			return Config{}, apperror.Parse(fmt.Sprintf("could not parse %s: %s", configFile, ferr.Error()))
		}
		cfg = merged
		cfg.ConfigFile = configFile
	}

	cfg = flags.apply(cfg)

	if cfg.IntervalMS <= 0 {
		return Config{}, apperror.Interval()
	}

	if printOnly {
		printConfig(cfg)
		os.Exit(0)
	}

	return cfg, nil
}

func defaultConfigFilePath(configDir string) string {
	for _, name := range []string{"config.toml", "config.json", "config.jsonc"} {
		candidate := filepath.Join(configDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return filepath.Join(configDir, "config.toml")
}

// IsContainerRuntime reports whether this process is itself running
// inside a container, per spec.md §6's OXKER_RUNTIME=container
// self-detection. Its only use is suppressing example-config writes; it
// does not affect show_self or the config search roots.
func IsContainerRuntime() bool {
	return os.Getenv(runtimeEnvVar) == "container"
}

// ResolveConfigDir mirrors the teacher's configDirForVendor/configDir:
// an explicit CONFIG_DIR env override, else the XDG config home for
// "oxker", created on first use.
func ResolveConfigDir() string {
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return dir
	}
	dirs := xdg.New("", "oxker")
	dir := dirs.ConfigHome()
	_ = os.MkdirAll(dir, 0o755)
	return dir
}

func printConfig(c Config) {
	fmt.Println("interval_ms:", strconv.Itoa(c.IntervalMS))
	fmt.Println("timestamp:", c.Timestamp)
	fmt.Println("colour_logs:", c.ColourLogs)
	fmt.Println("raw_logs:", c.RawLogs)
	fmt.Println("show_self:", c.ShowSelf)
	fmt.Println("show_gui:", c.ShowGui)
	fmt.Println("host:", c.Host)
	fmt.Println("no_stderr:", c.NoStderr)
	fmt.Println("save_dir:", c.SaveDir)
	fmt.Println("config_file:", c.ConfigFile)
	fmt.Println("use_cli:", c.UseCLI)
	fmt.Println("config_dir:", c.ConfigDir)
}
