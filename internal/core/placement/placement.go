// Package placement resolves where the toast viewport is drawn. A
// configuration is either a single target or a default plus responsive
// rules keyed by maximum viewport width.
package placement

import (
	"cmp"
	"math"
	"slices"
)

// Position is a viewport corner or edge.
type Position string

const (
	TopLeft      Position = "top-left"
	TopRight     Position = "top-right"
	TopCenter    Position = "top-center"
	BottomLeft   Position = "bottom-left"
	BottomRight  Position = "bottom-right"
	BottomCenter Position = "bottom-center"
)

// Positions lists every supported position.
var Positions = []Position{TopLeft, TopRight, TopCenter, BottomLeft, BottomRight, BottomCenter}

// DefaultPosition is used when a target does not name one.
const DefaultPosition = TopRight

// IsValid reports whether p is a supported position.
func (p Position) IsValid() bool {
	return slices.Contains(Positions, p)
}

// IsTop reports whether the position anchors to the top edge.
func (p Position) IsTop() bool {
	return p == TopLeft || p == TopRight || p == TopCenter
}

// Unbounded is the viewport width assumed when no viewport is known. It
// never matches a responsive rule, so the default target is selected.
const Unbounded = math.MaxInt

// Container references a custom host for inline toast rendering. Exactly
// one of the fields is expected to be set; the renderer decides how to
// interpret a Selector.
type Container struct {
	Handle   any        `yaml:"-" json:"-"`
	Lookup   func() any `yaml:"-" json:"-"`
	Selector string     `yaml:"selector,omitempty" json:"selector,omitempty"`
}

// IsZero reports whether no host is referenced.
func (c *Container) IsZero() bool {
	return c == nil || (c.Handle == nil && c.Lookup == nil && c.Selector == "")
}

// Element returns the concrete host element, calling Lookup if needed.
// Selector-only containers return nil.
func (c *Container) Element() any {
	if c == nil {
		return nil
	}
	if c.Handle != nil {
		return c.Handle
	}
	if c.Lookup != nil {
		return c.Lookup()
	}
	return nil
}

// Target is a concrete toast viewport location.
type Target struct {
	Position  Position   `yaml:"position" json:"position"`
	Container *Container `yaml:"container,omitempty" json:"container,omitempty"`
}

// At returns a target at position p with no custom container.
func At(p Position) Target {
	return Target{Position: p}
}

func (t Target) normalize() Target {
	if t.Position == "" {
		t.Position = DefaultPosition
	}
	if t.Container.IsZero() {
		t.Container = nil
	}
	return t
}

// Rule selects Target when the viewport width is at most MaxWidth.
type Rule struct {
	MaxWidth int    `yaml:"max_width" json:"max_width"`
	Target   Target `yaml:"target" json:"target"`
}

// Config is a placement configuration. A Config without rules is a single
// static target.
type Config struct {
	Default    Target `yaml:"default" json:"default"`
	Responsive []Rule `yaml:"responsive,omitempty" json:"responsive,omitempty"`
}

// Single returns a static configuration for t.
func Single(t Target) Config {
	return Config{Default: t}
}

// DefaultConfig returns the top-right static configuration.
func DefaultConfig() Config {
	return Single(At(DefaultPosition))
}

// HasResponsive reports whether the configuration depends on the viewport
// width. Static configurations need not be re-resolved on resize.
func (c Config) HasResponsive() bool {
	return len(c.Responsive) > 0
}

// Resolved is the outcome of resolving a Config for a viewport width.
type Resolved struct {
	Target
	IsInline bool `json:"is_inline"`
}

// Resolve selects the target for the given viewport width. Rules are
// evaluated in ascending MaxWidth order and the first rule whose MaxWidth
// is at least width wins; otherwise the default target applies.
func Resolve(cfg Config, width int) Resolved {
	target := cfg.Default
	if cfg.HasResponsive() {
		rules := slices.Clone(cfg.Responsive)
		slices.SortStableFunc(rules, func(a, b Rule) int {
			return cmp.Compare(a.MaxWidth, b.MaxWidth)
		})
		for _, r := range rules {
			if width <= r.MaxWidth {
				target = r.Target
				break
			}
		}
	}

	target = target.normalize()
	return Resolved{Target: target, IsInline: target.Container != nil}
}
