// Package preset loads YAML files holding playback settings.
//
// A preset mirrors the long names of the playback flags:
//
//	width: 120
//	framerate: 24
//	braille: true
//	threshold: 4
//
// Keys left out of the file, and flags given explicitly on the command line,
// keep their flag values. See [Apply].
package preset

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/termart/player"
	"go.jacobcolvin.com/termart/resize"
)

// ErrInvalidPreset indicates a preset that could not be read or parsed.
var ErrInvalidPreset = errors.New("invalid preset")

// Preset holds optional playback settings. Nil fields are unset.
type Preset struct {
	Width            *int     `yaml:"width"`
	Height           *int     `yaml:"height"`
	Framerate        *float64 `yaml:"framerate"`
	PreRender        *bool    `yaml:"pre-render"`
	Loop             *bool    `yaml:"loop"`
	Colored          *bool    `yaml:"colored"`
	AsciiString      *string  `yaml:"ascii-string"`
	Reverse          *bool    `yaml:"reverse"`
	Pixels           *bool    `yaml:"pixels"`
	Ratio            *float64 `yaml:"ratio"`
	Threshold        *int     `yaml:"threshold"`
	Braille          *bool    `yaml:"braille"`
	BackgroundString *string  `yaml:"background-string"`
	Filter           *string  `yaml:"filter"`
	Workers          *int     `yaml:"workers"`
}

// Load reads and parses the preset file at path.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Preset path from CLI flag is expected.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// Parse decodes a preset document. Unknown keys, negative sizes and unknown
// filter names are rejected.
func Parse(data []byte) (*Preset, error) {
	p := &Preset{}
	if len(bytes.TrimSpace(data)) == 0 {
		return p, nil
	}

	err := yaml.UnmarshalWithOptions(data, p, yaml.DisallowUnknownField())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}

	err = p.validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}

	return p, nil
}

func (p *Preset) validate() error {
	for name, v := range map[string]*int{
		"width":     p.Width,
		"height":    p.Height,
		"threshold": p.Threshold,
		"workers":   p.Workers,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, *v)
		}
	}

	for name, v := range map[string]*float64{
		"framerate": p.Framerate,
		"ratio":     p.Ratio,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s must not be negative, got %g", name, *v)
		}
	}

	if p.Filter != nil {
		_, err := resize.ParseFilter(*p.Filter)
		if err != nil {
			return err
		}
	}

	return nil
}

// Apply copies the set fields of p into cfg, skipping every field whose flag
// changed reports as set on the command line. A nil changed applies all set
// fields.
func (p *Preset) Apply(cfg *player.Config, changed func(flag string) bool) {
	if changed == nil {
		changed = func(string) bool { return false }
	}

	set(&cfg.Width, p.Width, changed(cfg.Flags.Width))
	set(&cfg.Height, p.Height, changed(cfg.Flags.Height))
	set(&cfg.Framerate, p.Framerate, changed(cfg.Flags.Framerate))
	set(&cfg.PreRender, p.PreRender, changed(cfg.Flags.PreRender))
	set(&cfg.Loop, p.Loop, changed(cfg.Flags.Loop))
	set(&cfg.Colored, p.Colored, changed(cfg.Flags.Colored))
	set(&cfg.AsciiString, p.AsciiString, changed(cfg.Flags.AsciiString))
	set(&cfg.Reverse, p.Reverse, changed(cfg.Flags.Reverse))
	set(&cfg.Pixels, p.Pixels, changed(cfg.Flags.Pixels))
	set(&cfg.Ratio, p.Ratio, changed(cfg.Flags.Ratio))
	set(&cfg.Threshold, p.Threshold, changed(cfg.Flags.Threshold))
	set(&cfg.Braille, p.Braille, changed(cfg.Flags.Braille))
	set(&cfg.BackgroundString, p.BackgroundString, changed(cfg.Flags.BackgroundString))
	set(&cfg.Filter, p.Filter, changed(cfg.Flags.Filter))
	set(&cfg.Workers, p.Workers, changed(cfg.Flags.Workers))
}

func set[T any](dst *T, v *T, explicit bool) {
	if v == nil || explicit {
		return
	}

	*dst = *v
}
