package config

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/iburimskiy/protractor/internal/protractor"
)

const (
	WindowTitle = "Protractor"

	DefaultSize = 800
	MinSize     = 600

	// Window opacity at rest and while being dragged
	WindowOpacity = 0.6
	DragOpacity   = 0.3

	// Pixels per wheel notch
	ZoomSensitivity = 3.0

	CacheSize = 16
)

// ErrInvalidConfig reports a configuration value outside its domain.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the user-facing configuration. Zero values are never used
// directly; Default fills every field.
type Config struct {
	Span            int     `toml:"span"`
	Style           string  `toml:"style"`
	Size            int     `toml:"size"`
	MinSize         int     `toml:"min_size"`
	ZoomSensitivity float64 `toml:"zoom_sensitivity"`
	Opacity         float64 `toml:"opacity"`
	DragOpacity     float64 `toml:"drag_opacity"`
	AccentColor     string  `toml:"accent_color"`
	LogLevel        string  `toml:"log_level"`
	CacheSize       int     `toml:"cache_size"`
	ShowStatus      bool    `toml:"show_status"`
}

func Default() Config {
	return Config{
		Span:            int(protractor.Half),
		Style:           protractor.Detailed.String(),
		Size:            DefaultSize,
		MinSize:         MinSize,
		ZoomSensitivity: ZoomSensitivity,
		Opacity:         WindowOpacity,
		DragOpacity:     DragOpacity,
		AccentColor:     "#0000ff",
		LogLevel:        "info",
		CacheSize:       CacheSize,
	}
}

// Load reads a TOML file on top of the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

// Parse builds the configuration from command-line arguments. A -config file
// is applied first and explicit flags override it.
func Parse(name string, args []string) (Config, error) {
	var path string
	cfg := Default()
	fs := cfg.flagSet(name, &path)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return cfg, err
		}
		if err := cfg.flagSet(name, &path).Parse(args); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}

func (c *Config) flagSet(name string, path *string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(path, "config", "", "Path to a TOML configuration file")
	fs.IntVar(&c.Span, "span", c.Span, "Angular span in degrees: 180 or 360")
	fs.StringVar(&c.Style, "style", c.Style, "Scale style: detailed or minimal")
	fs.IntVar(&c.Size, "size", c.Size, "Initial instrument size in pixels")
	fs.IntVar(&c.MinSize, "min-size", c.MinSize, "Smallest instrument size in pixels")
	fs.Float64Var(&c.ZoomSensitivity, "zoom", c.ZoomSensitivity, "Pixels per mouse wheel notch")
	fs.Float64Var(&c.Opacity, "opacity", c.Opacity, "Window opacity")
	fs.Float64Var(&c.DragOpacity, "drag-opacity", c.DragOpacity, "Window opacity while dragging")
	fs.StringVar(&c.AccentColor, "accent", c.AccentColor, "Secondary label color as #rrggbb")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn or error")
	fs.IntVar(&c.CacheSize, "cache-size", c.CacheSize, "Number of cached window masks")
	fs.BoolVar(&c.ShowStatus, "status", c.ShowStatus, "Print size and span in the window corner")
	return fs
}

// Validate checks every field.
func (c Config) Validate() error {
	var errs []error
	if _, err := protractor.ParseSpan(c.Span); err != nil {
		errs = append(errs, err)
	}
	if _, err := protractor.ParseStyle(c.Style); err != nil {
		errs = append(errs, err)
	}
	if c.MinSize < 3 {
		errs = append(errs, fmt.Errorf("%w: min_size %d", ErrInvalidConfig, c.MinSize))
	}
	if c.Size < 1 {
		errs = append(errs, fmt.Errorf("%w: size %d", ErrInvalidConfig, c.Size))
	}
	if c.ZoomSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("%w: zoom_sensitivity %g", ErrInvalidConfig, c.ZoomSensitivity))
	}
	if !unit(c.Opacity) || !unit(c.DragOpacity) {
		errs = append(errs, fmt.Errorf("%w: opacity must be within (0, 1]", ErrInvalidConfig))
	}
	if _, err := ParseColor(c.AccentColor); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.CacheSize < 2 {
		errs = append(errs, fmt.Errorf("%w: cache_size %d", ErrInvalidConfig, c.CacheSize))
	}
	return errors.Join(errs...)
}

func unit(v float64) bool { return v > 0 && v <= 1 }

// Protractor returns the initial render configuration.
func (c Config) Protractor() (protractor.Config, error) {
	span, err := protractor.ParseSpan(c.Span)
	if err != nil {
		return protractor.Config{}, err
	}
	style, err := protractor.ParseStyle(c.Style)
	if err != nil {
		return protractor.Config{}, err
	}
	return protractor.Config{Span: span, Style: style, Size: protractor.Square(c.Size)}, nil
}

// ScaleOptions returns the zoom range for a display of w by h pixels.
func (c Config) ScaleOptions(w, h int) protractor.ScaleOptions {
	return protractor.ScaleOptions{
		MinSize:     float64(c.MinSize),
		MaxSize:     protractor.DisplayBound(w, h),
		Sensitivity: c.ZoomSensitivity,
	}
}

// Palette returns the label palette with the configured accent.
func (c Config) Palette() (protractor.Palette, error) {
	pal := protractor.DefaultPalette()
	accent, err := ParseColor(c.AccentColor)
	if err != nil {
		return pal, err
	}
	pal.Accent = accent
	return pal, nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return lvl, nil
}

// ParseColor parses #rgb or #rrggbb.
func ParseColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	hex := strings.TrimPrefix(s, "#")
	var err error
	switch len(hex) {
	case 6:
		_, err = fmt.Sscanf(hex, "%2x%2x%2x", &c.R, &c.G, &c.B)
	case 3:
		_, err = fmt.Sscanf(hex, "%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = errors.New("want #rgb or #rrggbb")
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalidConfig, s, err)
	}
	return c, nil
}

// FormatColor is the inverse of ParseColor for opaque colors.
func FormatColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
