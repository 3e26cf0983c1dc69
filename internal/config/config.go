package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"uwscript/internal/include"
	"uwscript/internal/trace"
)

// FileName is the settings file looked up next to a script.
const FileName = "uwscript.toml"

var (
	// ErrUnknownOption reports keys that do not belong to any section.
	ErrUnknownOption = errors.New("unknown option")
	// ErrInvalidValue reports a key with a value of the right type but outside its domain.
	ErrInvalidValue = errors.New("invalid value")
)

// Config is the decoded uwscript.toml.
type Config struct {
	Parser  ParserSection  `toml:"parser"`
	Options OptionsSection `toml:"options"`
	Call    CallSection    `toml:"call"`
	Trace   TraceSection   `toml:"trace"`

	// Path: откуда загружен; пусто для значений по умолчанию.
	Path string `toml:"-"`
}

type ParserSection struct {
	Strict         bool `toml:"strict"`
	MaxDiagnostics int  `toml:"max_diagnostics"`
	// Builtins дополняют встроенную таблицу имён.
	Builtins []string `toml:"builtins"`
}

// OptionsSection holds defaults for OPTION directives; a script can only turn them on.
type OptionsSection struct {
	Explicit  bool `toml:"explicit"`
	OptPublic bool `toml:"optpublic"`
}

type CallSection struct {
	Timeout          duration `toml:"timeout"`
	FallbackEncoding string   `toml:"fallback_encoding"`
	DefaultExt       string   `toml:"default_ext"`
}

type TraceSection struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// duration декодируется из строки вида "15s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the settings used when no uwscript.toml is found.
func Default() Config {
	return Config{
		Parser: ParserSection{
			Strict:         true,
			MaxDiagnostics: 100,
		},
		Call: CallSection{
			Timeout:          duration{15 * time.Second},
			FallbackEncoding: "shift_jis",
			DefaultExt:       include.DefaultExt,
		},
		Trace: TraceSection{
			Level:  "off",
			Output: "-",
		},
	}
}

// Load decodes path over the defaults. Keys the file leaves out keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownOption, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that TOML types alone cannot express.
func (c *Config) Validate() error {
	if c.Parser.MaxDiagnostics < 0 {
		return fmt.Errorf("%w: parser.max_diagnostics must not be negative", ErrInvalidValue)
	}
	if c.Call.Timeout.Duration < 0 {
		return fmt.Errorf("%w: call.timeout must not be negative", ErrInvalidValue)
	}
	if ext := c.Call.DefaultExt; ext != "" && !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("%w: call.default_ext %q must start with a dot", ErrInvalidValue, ext)
	}
	if _, err := c.LegacyEncoding(); err != nil {
		return err
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("%w: trace.level: %w", ErrInvalidValue, err)
	}
	return nil
}

// LegacyEncoding resolves call.fallback_encoding. "none" (or an empty value)
// returns nil: non-UTF-8 scripts are rejected instead of decoded.
func (c *Config) LegacyEncoding() (encoding.Encoding, error) {
	name := strings.TrimSpace(c.Call.FallbackEncoding)
	if name == "" || strings.EqualFold(name, "none") {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: call.fallback_encoding %q: %w", ErrInvalidValue, name, err)
	}
	return enc, nil
}

// Find looks for uwscript.toml next to the script, then in the working directory.
func Find(scriptPath string) (path string, ok bool, err error) {
	var dirs []string
	if scriptPath != "" {
		abs, err := filepath.Abs(scriptPath)
		if err != nil {
			return "", false, fmt.Errorf("failed to resolve %q: %w", scriptPath, err)
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			dirs = append(dirs, abs)
		} else {
			dirs = append(dirs, filepath.Dir(abs))
		}
	}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	for _, dir := range dirs {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
	}
	return "", false, nil
}

// Resolve loads explicit when given, otherwise the file Find locates, otherwise the defaults.
func Resolve(explicit, scriptPath string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(scriptPath)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
