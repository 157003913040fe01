package layout

import (
	"math"
	"strings"

	"github.com/matzehuels/mindgeo/pkg/errors"
)

// Mode selects the placement strategy.
type Mode string

// Layout modes.
const (
	Horizontal Mode = "horizontal"
	Vertical   Mode = "vertical"
	Radial     Mode = "radial"
)

// Modes lists the supported modes, default first.
var Modes = []Mode{Horizontal, Vertical, Radial}

// ParseMode parses a mode name case-insensitively. The empty string selects
// [Horizontal].
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Horizontal:
		return Horizontal, nil
	case Vertical:
		return Vertical, nil
	case Radial:
		return Radial, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode,
		"invalid layout mode %q (must be one of: horizontal, vertical, radial)", s)
}

// Default spacing values in canvas units.
const (
	DefaultHorizontalOffset = 250.0
	DefaultRootSpacing      = 120.0
	DefaultChildSpacing     = 80.0
	DefaultVerticalGap      = 40.0
)

// Options controls placement. Zero spacing fields take their defaults.
type Options struct {
	Mode             Mode    `json:"mode,omitempty" toml:"mode"`
	HorizontalOffset float64 `json:"horizontal_offset,omitempty" toml:"horizontal_offset"`
	RootSpacing      float64 `json:"root_spacing,omitempty" toml:"root_spacing"`
	ChildSpacing     float64 `json:"child_spacing,omitempty" toml:"child_spacing"`
	VerticalGap      float64 `json:"vertical_gap,omitempty" toml:"vertical_gap"`
}

// DefaultOptions returns horizontal mode with the default spacing.
func DefaultOptions() Options {
	return Options{
		Mode:             Horizontal,
		HorizontalOffset: DefaultHorizontalOffset,
		RootSpacing:      DefaultRootSpacing,
		ChildSpacing:     DefaultChildSpacing,
		VerticalGap:      DefaultVerticalGap,
	}
}

// WithDefaults fills zero fields from [DefaultOptions].
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.Mode == "" {
		o.Mode = d.Mode
	}
	if o.HorizontalOffset == 0 {
		o.HorizontalOffset = d.HorizontalOffset
	}
	if o.RootSpacing == 0 {
		o.RootSpacing = d.RootSpacing
	}
	if o.ChildSpacing == 0 {
		o.ChildSpacing = d.ChildSpacing
	}
	if o.VerticalGap == 0 {
		o.VerticalGap = d.VerticalGap
	}
	return o
}

// Validate checks the mode and spacing values.
func (o Options) Validate() error {
	if _, err := ParseMode(string(o.Mode)); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"horizontal_offset", o.HorizontalOffset},
		{"root_spacing", o.RootSpacing},
		{"child_spacing", o.ChildSpacing},
	} {
		if err := errors.ValidateSpacing(f.name, f.v); err != nil {
			return err
		}
	}
	if o.VerticalGap < 0 || math.IsNaN(o.VerticalGap) || math.IsInf(o.VerticalGap, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "vertical_gap must be a non-negative number, got %v", o.VerticalGap)
	}
	return nil
}

// depthOffset is the cumulative distance from the root to depth d:
// RootSpacing for the first level plus ChildSpacing per further level.
func (o Options) depthOffset(d int) float64 {
	if d <= 0 {
		return 0
	}
	return o.RootSpacing + float64(d-1)*o.ChildSpacing
}
