// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"xft/internal/cli"
)

// Profile is an optional TOML file carrying the same parameters as the
// filter flags, useful for pinning a slide's filter setup across runs.
// Pointer fields distinguish "absent" from a zero value.
type Profile struct {
	MinQV       *float64 `toml:"min_qv"`
	MinX        *float64 `toml:"min_x"`
	MaxX        *float64 `toml:"max_x"`
	MinY        *float64 `toml:"min_y"`
	MaxY        *float64 `toml:"max_y"`
	NucleusOnly *bool    `toml:"nucleus_only"`
	OutDir      *string  `toml:"out_dir"`
}

// Load reads and decodes a profile file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &p, nil
}

// Overlay fills in profile values for parameters the command line left at
// their defaults. Explicit flags always win over the profile.
func (p *Profile) Overlay(o *cli.Options) {
	if p == nil {
		return
	}
	if p.MinQV != nil && !o.Set["min-qv"] {
		o.MinQV = *p.MinQV
	}
	if p.MinX != nil && !o.Set["min-x"] {
		o.MinX = *p.MinX
	}
	if p.MaxX != nil && !o.Set["max-x"] {
		o.MaxX = *p.MaxX
	}
	if p.MinY != nil && !o.Set["min-y"] {
		o.MinY = *p.MinY
	}
	if p.MaxY != nil && !o.Set["max-y"] {
		o.MaxY = *p.MaxY
	}
	if p.NucleusOnly != nil && !o.Set["nucleus-only"] {
		o.NucleusOnly = *p.NucleusOnly
	}
	if p.OutDir != nil && !o.Set["out-dir"] {
		o.OutDir = *p.OutDir
	}
}
