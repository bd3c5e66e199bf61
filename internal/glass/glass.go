// Package glass loads the reference tables used to derive a firing curve from a
// glass type, an oven type and the size of the piece.
package glass

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Glass categories.
const (
	CategoryFloat = "float"
	CategoryCOE   = "coe90-96"
)

// Oven types: heated from the lid or from the walls.
const (
	OvenTop  = "t"
	OvenSide = "s"
)

// MaxLayers is the number of layer columns in every table row.
const MaxLayers = 5

var (
	ErrNotFound     = errors.New("not found in reference tables")
	ErrInvalidTable = errors.New("invalid reference tables")
)

// Type describes one kind of glass.
type Type struct {
	Name        string `yaml:"name" json:"name"`
	Category    string `yaml:"category" json:"category"`
	FullFuseTop [2]int `yaml:"full_fuse_top" json:"full_fuse_top"` // °C range
	SlumpTop    [2]int `yaml:"slump_top" json:"slump_top"`
	TackFuseTop int    `yaml:"tack_fuse_top" json:"tack_fuse_top"`
	UpperAnneal int    `yaml:"upper_anneal" json:"upper_anneal"`
	LowerAnneal int    `yaml:"lower_anneal" json:"lower_anneal"`
}

// Row holds minutes per layer count (index 0 = one layer) for a radius in cm.
type Row struct {
	Radius  int   `yaml:"radius"`
	Minutes []int `yaml:"minutes"`
}

// Table is a radius × layers lookup of minutes.
type Table struct {
	Category string `yaml:"category"`
	Oven     string `yaml:"oven,omitempty"`
	Rows     []Row  `yaml:"rows"`
}

// Tables is the whole reference data set.
type Tables struct {
	InitialMeltPoint int     `yaml:"initial_melt_point"`
	GlassTypes       []Type  `yaml:"glass_types"`
	Heating          []Table `yaml:"heating"`
	Holding          []Table `yaml:"holding"`
	Annealing        []Table `yaml:"annealing"`
}

// Load reads and validates a YAML tables file.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML tables.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that every table is usable for lookups.
func (t *Tables) Validate() error {
	if t.InitialMeltPoint <= 0 {
		return invalid("initial_melt_point must be positive")
	}
	if len(t.GlassTypes) == 0 {
		return invalid("no glass types")
	}
	seen := map[string]bool{}
	for _, g := range t.GlassTypes {
		if g.Name == "" {
			return invalid("glass type without name")
		}
		if seen[g.Name] {
			return invalid("duplicate glass type %q", g.Name)
		}
		seen[g.Name] = true
		if g.Category != CategoryFloat && g.Category != CategoryCOE {
			return invalid("glass %q: unknown category %q", g.Name, g.Category)
		}
	}
	for name, tables := range map[string][]Table{"heating": t.Heating, "holding": t.Holding, "annealing": t.Annealing} {
		if len(tables) == 0 {
			return invalid("no %s tables", name)
		}
		for _, tbl := range tables {
			if err := tbl.validate(); err != nil {
				return fmt.Errorf("%s table %s/%s: %w", name, tbl.Category, tbl.Oven, err)
			}
		}
	}
	return nil
}

func (tbl Table) validate() error {
	if len(tbl.Rows) == 0 {
		return invalid("no rows")
	}
	for _, r := range tbl.Rows {
		if len(r.Minutes) != MaxLayers {
			return invalid("radius %d: want %d layer columns, got %d", r.Radius, MaxLayers, len(r.Minutes))
		}
		for i, m := range r.Minutes {
			if m <= 0 {
				return invalid("radius %d, %d layers: minutes must be positive", r.Radius, i+1)
			}
		}
	}
	return nil
}

func (tbl Table) lookup(radius, layers int) (int, error) {
	if layers < 1 || layers > MaxLayers {
		return 0, fmt.Errorf("%d layers: %w", layers, ErrNotFound)
	}
	for _, r := range tbl.Rows {
		if r.Radius == radius {
			return r.Minutes[layers-1], nil
		}
	}
	return 0, fmt.Errorf("radius %d: %w", radius, ErrNotFound)
}

// GlassType returns the named glass.
func (t *Tables) GlassType(name string) (Type, error) {
	for _, g := range t.GlassTypes {
		if g.Name == name {
			return g, nil
		}
	}
	return Type{}, fmt.Errorf("glass %q: %w", name, ErrNotFound)
}

// Types returns the glass types sorted by name.
func (t *Tables) Types() []Type {
	out := append([]Type(nil), t.GlassTypes...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// HeatingMinutes is the time allowed to reach the initial melt point.
func (t *Tables) HeatingMinutes(category, oven string, radius, layers int) (int, error) {
	for _, tbl := range t.Heating {
		if tbl.Category == category && tbl.Oven == oven {
			return tbl.lookup(radius, layers)
		}
	}
	return 0, fmt.Errorf("heating table %s/%s: %w", category, oven, ErrNotFound)
}

// HoldingMinutes is the time allowed to cool from top temperature to the upper annealing point.
func (t *Tables) HoldingMinutes(category string, radius, layers int) (int, error) {
	return findTable(t.Holding, "holding", category, radius, layers)
}

// AnnealingMinutes is the time allowed between the upper and lower annealing points.
func (t *Tables) AnnealingMinutes(category string, radius, layers int) (int, error) {
	return findTable(t.Annealing, "annealing", category, radius, layers)
}

func findTable(tables []Table, kind, category string, radius, layers int) (int, error) {
	for _, tbl := range tables {
		if tbl.Category == category {
			return tbl.lookup(radius, layers)
		}
	}
	return 0, fmt.Errorf("%s table %s: %w", kind, category, ErrNotFound)
}

// AllowedOvens lists the oven types usable with a glass category. Float glass is
// only fired in top-heated ovens.
func AllowedOvens(category string) []string {
	if category == CategoryFloat {
		return []string{OvenTop}
	}
	return []string{OvenTop, OvenSide}
}

// OvenName is a display name for an oven type.
func OvenName(oven string) string {
	switch oven {
	case OvenTop:
		return "top-heated"
	case OvenSide:
		return "side-heated"
	default:
		return oven
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTable, fmt.Sprintf(format, args...))
}
