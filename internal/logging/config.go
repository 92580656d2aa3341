package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Environment overrides, read once when the process first configures logging.
const (
	EnvLogLevel     = "ZPART_LOG_LEVEL"
	EnvLogTimestamp = "ZPART_LOG_TIMESTAMP"
	EnvLogNoColor   = "ZPART_LOG_NOCOLOR"
	EnvLogBypass    = "ZPART_LOG_BYPASS"
)

// Profile selects the defaults the environment then overrides.
type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Config is the resolved logging setup for one process.
type Config struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	Bypass    bool
	Out       io.Writer
}

// Defaults returns the profile's settings before any override. Test output
// carries no timestamps.
func (p Profile) Defaults() Config {
	if p == ProfileTest {
		return Config{Level: zerolog.DebugLevel}
	}
	return Config{Level: zerolog.InfoLevel, Timestamp: true}
}

// Resolve applies the ZPART_LOG_* values from getenv over the profile
// defaults. Values that do not parse are ignored.
func Resolve(p Profile, getenv func(string) string) Config {
	cfg := p.Defaults()
	if lvl, ok := parseLevel(getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	flags := []struct {
		key string
		dst *bool
	}{
		{EnvLogTimestamp, &cfg.Timestamp},
		{EnvLogNoColor, &cfg.NoColor},
		{EnvLogBypass, &cfg.Bypass},
	}
	for _, f := range flags {
		if v, err := strconv.ParseBool(strings.TrimSpace(getenv(f.key))); err == nil {
			*f.dst = v
		}
	}
	return cfg
}

var configureOnce sync.Once

func ConfigureRuntime() { Configure(ProfileRuntime) }

func ConfigureTests() { Configure(ProfileTest) }

// Configure installs the profile on first use. Later calls do nothing,
// whichever profile they name.
func Configure(p Profile) {
	configureOnce.Do(func() {
		Apply(Resolve(p, os.Getenv))
	})
}

// Apply sets the zerolog global level and replaces log.Logger with a console
// writer on cfg.Out, or stderr when Out is nil. Bypass swaps in a discarding
// logger so nothing is formatted at all.
func Apply(cfg Config) {
	zerolog.SetGlobalLevel(cfg.Level)
	if cfg.Bypass {
		log.Logger = zerolog.New(io.Discard)
		return
	}
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	writer := zerolog.ConsoleWriter{Out: out, NoColor: cfg.NoColor, TimeFormat: time.RFC3339}
	ctx := zerolog.New(writer).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	log.Logger = ctx.Logger()
}

var levelAliases = map[string]zerolog.Level{
	"diagnostics": zerolog.TraceLevel,
	"warning":     zerolog.WarnLevel,
	"off":         zerolog.Disabled,
	"none":        zerolog.Disabled,
}

func parseLevel(raw string) (zerolog.Level, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return zerolog.NoLevel, false
	}
	if lvl, ok := levelAliases[raw]; ok {
		return lvl, true
	}
	lvl, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.NoLevel, false
	}
	return lvl, true
}
