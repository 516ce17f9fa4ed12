package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/atomicstack/suggestbox/internal/app"
	"github.com/atomicstack/suggestbox/internal/suggest"
	"github.com/atomicstack/suggestbox/internal/transport"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig      = "SUGGESTBOX_CONFIG"
	envEndpoint    = "SUGGESTBOX_ENDPOINT"
	envLocale      = "SUGGESTBOX_LOCALE"
	envDebounce    = "SUGGESTBOX_DEBOUNCE"
	envTimeout     = "SUGGESTBOX_TIMEOUT"
	envMinInterval = "SUGGESTBOX_MIN_INTERVAL"
	envMaxRows     = "SUGGESTBOX_MAX_ROWS"
	envWidth       = "SUGGESTBOX_WIDTH"
	envHeight      = "SUGGESTBOX_HEIGHT"
	envFooter      = "SUGGESTBOX_FOOTER"
	envOffline     = "SUGGESTBOX_OFFLINE"
	envWords       = "SUGGESTBOX_WORDS"
	envTrace       = "SUGGESTBOX_TRACE"
	envLogFile     = "SUGGESTBOX_LOG_FILE"
)

// fileConfig mirrors the optional TOML file. Every key is optional.
type fileConfig struct {
	Endpoint    string        `toml:"endpoint"`
	Locale      string        `toml:"locale"`
	Debounce    time.Duration `toml:"debounce"`
	Timeout     time.Duration `toml:"timeout"`
	MinInterval time.Duration `toml:"min_interval"`
	MaxRows     int           `toml:"max_rows"`
	Width       int           `toml:"width"`
	Height      int           `toml:"height"`
	Footer      bool          `toml:"footer"`
	Offline     bool          `toml:"offline"`
	Words       string        `toml:"words"`
	Trace       bool          `toml:"trace"`
	LogFile     string        `toml:"log_file"`
}

func defaults() fileConfig {
	return fileConfig{
		Endpoint: transport.DefaultEndpoint,
		Debounce: suggest.DefaultDebounce,
		MaxRows:  8,
		Footer:   true,
	}
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Flags win over
// the environment, which wins over the config file, which wins over defaults.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path := envOrDefault(env, envConfig, "")
	if p, ok := scanConfigFlag(args); ok {
		path = p
	}
	base := defaults()
	if path != "" {
		if err := loadFile(path, &base); err != nil {
			return Config{}, err
		}
	}

	fs := flag.NewFlagSet("suggestbox", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	_ = fs.String("config", path, "path to a TOML config file")
	endpoint := fs.String("endpoint", envOrDefault(env, envEndpoint, base.Endpoint), "suggestion URL template with {locale} and {query} placeholders")
	locale := fs.String("locale", envOrDefault(env, envLocale, base.Locale), "locale sent with every query (default from LC_ALL/LC_MESSAGES/LANG)")
	debounce := fs.Duration("debounce", envOrDuration(env, envDebounce, base.Debounce), "quiet period after the last edit before querying")
	timeout := fs.Duration("timeout", envOrDuration(env, envTimeout, base.Timeout), "per-request timeout (0 disables)")
	minInterval := fs.Duration("min-interval", envOrDuration(env, envMinInterval, base.MinInterval), "minimum spacing between requests (0 disables)")
	maxRows := fs.Int("max-rows", envOrInt(env, envMaxRows, base.MaxRows), "number of visible popup rows")
	width := fs.Int("width", envOrInt(env, envWidth, base.Width), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, base.Height), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envFooter, base.Footer), "show the key hint row")
	offline := fs.Bool("offline", envOrBool(env, envOffline, base.Offline), "serve suggestions from a local word list instead of the remote endpoint")
	words := fs.String("words", envOrDefault(env, envWords, base.Words), "word list file for -offline (one entry per line)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, base.Trace), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, base.LogFile), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	resolvedLocale := *locale
	if strings.TrimSpace(resolvedLocale) == "" {
		resolvedLocale = suggest.SystemLocale(environ)
	}
	resolvedLocale = suggest.NormalizeLocale(resolvedLocale)

	cfg := Config{
		App: app.Config{
			Endpoint:    *endpoint,
			Locale:      resolvedLocale,
			Debounce:    *debounce,
			Timeout:     *timeout,
			MinInterval: *minInterval,
			MaxRows:     *maxRows,
			Width:       *width,
			Height:      *height,
			Footer:      *footer,
			Offline:     *offline,
			WordsFile:   *words,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File: path,
		Flags: map[string]string{
			"endpoint":    *endpoint,
			"locale":      resolvedLocale,
			"debounce":    debounce.String(),
			"timeout":     timeout.String(),
			"minInterval": minInterval.String(),
			"maxRows":     strconv.Itoa(*maxRows),
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"offline":     strconv.FormatBool(*offline),
			"words":       *words,
			"trace":       strconv.FormatBool(*trace),
			"logFile":     *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func loadFile(path string, into *fileConfig) error {
	md, err := toml.DecodeFile(path, into)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// scanConfigFlag finds -config ahead of the full parse so the file can seed
// the other flags' defaults.
func scanConfigFlag(args []string) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value, true
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures the combination of options is usable.
func Validate(cfg Config) error {
	var errs []error
	c := cfg.App
	if !c.Offline && !strings.Contains(c.Endpoint, transport.QueryPlaceholder) {
		errs = append(errs, fmt.Errorf("endpoint %q lacks the %s placeholder", c.Endpoint, transport.QueryPlaceholder))
	}
	if c.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce must be >= 0 (got %s)", c.Debounce))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must be >= 0 (got %s)", c.Timeout))
	}
	if c.MinInterval < 0 {
		errs = append(errs, fmt.Errorf("min-interval must be >= 0 (got %s)", c.MinInterval))
	}
	if c.MaxRows < 0 {
		errs = append(errs, fmt.Errorf("max-rows must be >= 0 (got %d)", c.MaxRows))
	}
	if c.WordsFile != "" && !c.Offline {
		errs = append(errs, errors.New("words requires offline mode"))
	}
	return errors.Join(errs...)
}
