package parallax

import (
	"strings"

	"golang.org/x/text/cases"
)

// Defaults applied when an element omits or garbles a setting.
const (
	DefaultOffset = 60
	DefaultSpeed  = 5
)

// Mode selects the scroll reference point and mapping formula.
type Mode uint8

const (
	// ModeBottomPass starts the effect when the element enters the viewport
	// from below. This is the default mode.
	ModeBottomPass Mode = iota

	// ModeTopPass starts the effect when the element reaches the top of
	// the viewport.
	ModeTopPass

	// ModeDocument maps the whole document scroll range.
	ModeDocument
)

// String returns the canonical attribute value for the mode.
func (m Mode) String() string {
	switch m {
	case ModeBottomPass:
		return "passBottom"
	case ModeTopPass:
		return "passTop"
	case ModeDocument:
		return "document"
	}
	return "unknown"
}

// ParseMode parses a start-mode attribute value. Matching is case
// insensitive. Unknown or empty values select ModeBottomPass.
func ParseMode(s string) Mode {
	switch cases.Fold().String(strings.TrimSpace(s)) {
	case "document":
		return ModeDocument
	case "passtop", "top":
		return ModeTopPass
	default:
		return ModeBottomPass
	}
}

// Config is the immutable per-instance configuration read from
// declarative attributes.
type Config struct {
	Mode Mode

	// Offset is the maximum pixel displacement. Always >= 0.
	Offset int

	// Speed is the scroll divisor for ModeTopPass and ModeDocument.
	// Always > 0.
	Speed int
}

// DefaultConfig returns the configuration of an element without attributes.
func DefaultConfig() Config {
	return Config{Mode: ModeBottomPass, Offset: DefaultOffset, Speed: DefaultSpeed}
}

// Attributes gives read access to the declarative attributes of a host
// element.
type Attributes interface {
	Attr(name string) (string, bool)
}

// ParseConfig reads an element's configuration. Missing or invalid values
// silently fall back to defaults; parsing never fails.
func ParseConfig(attrs Attributes, opts ...Option) Config {
	return parseConfig(attrs, buildOptions(opts))
}

func parseConfig(attrs Attributes, o options) Config {
	cfg := Config{
		Mode:   ModeBottomPass,
		Offset: o.defaultOffset,
		Speed:  o.defaultSpeed,
	}
	if attrs == nil {
		return cfg
	}
	if v, ok := attrs.Attr(o.startAttr); ok {
		cfg.Mode = ParseMode(v)
	}
	if v, ok := attrs.Attr(o.offsetAttr); ok {
		if n, ok := leadingInt(v); ok && n >= 0 {
			cfg.Offset = n
		}
	}
	if v, ok := attrs.Attr(o.speedAttr); ok {
		if n, ok := leadingInt(v); ok && n > 0 {
			cfg.Speed = n
		}
	}
	return cfg
}

// leadingInt parses an optional sign followed by decimal digits, ignoring
// surrounding whitespace and any trailing text ("60px" is 60).
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		if n > (1<<31)/10 {
			return 0, false
		}
		n = n*10 + int(r-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
