package layout

import "log/slog"

// Config tunes the inference heuristics. The zero value is ready to use;
// defaults match the thresholds the heuristics were calibrated with.
type Config struct {
	// MaxElements caps the collector scan (document order). Default: 1000.
	MaxElements int `json:"max_elements" yaml:"max_elements"`

	// MinElementSize is the significance floor in pixels applied to both
	// dimensions. Default: 20.
	MinElementSize float64 `json:"min_element_size" yaml:"min_element_size"`

	// MinSlotSize drops non-text elements smaller than this in both
	// dimensions. Default: 50.
	MinSlotSize float64 `json:"min_slot_size" yaml:"min_slot_size"`

	// HeroTopFraction is the viewport-height fraction considered "above
	// the fold" for hero and hero-image roles. Default: 0.3.
	HeroTopFraction float64 `json:"hero_top_fraction" yaml:"hero_top_fraction"`

	// HeroMinWidth/HeroMinHeight define "large" for the hero heuristic.
	// Defaults: 300 / 200 px.
	HeroMinWidth  float64 `json:"hero_min_width" yaml:"hero_min_width"`
	HeroMinHeight float64 `json:"hero_min_height" yaml:"hero_min_height"`

	// ShellWidthFraction/ShellHeightFraction identify full-bleed container
	// wrappers to exclude. Defaults: 0.9 / 0.7 of the viewport.
	ShellWidthFraction  float64 `json:"shell_width_fraction" yaml:"shell_width_fraction"`
	ShellHeightFraction float64 `json:"shell_height_fraction" yaml:"shell_height_fraction"`

	// RepeatThreshold is the maximum relative dimensional difference for
	// two elements to count as repeats. Default: 0.1.
	RepeatThreshold float64 `json:"repeat_threshold" yaml:"repeat_threshold"`

	// VisualThreshold is the normalized alignment/proximity threshold for
	// visual grouping. Default: 0.02.
	VisualThreshold float64 `json:"visual_threshold" yaml:"visual_threshold"`

	// GridRowTolerance bins slots into grid rows by normalized y.
	// Default: 0.05.
	GridRowTolerance float64 `json:"grid_row_tolerance" yaml:"grid_row_tolerance"`

	// SectionTolerance bins slots into sections by normalized y.
	// Default: 0.1.
	SectionTolerance float64 `json:"section_tolerance" yaml:"section_tolerance"`

	// AspectTolerance bounds aspect-ratio simplification. Default: 0.01.
	AspectTolerance float64 `json:"aspect_tolerance" yaml:"aspect_tolerance"`

	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.MaxElements <= 0 {
		c.MaxElements = 1000
	}
	if c.MinElementSize <= 0 {
		c.MinElementSize = 20
	}
	if c.MinSlotSize <= 0 {
		c.MinSlotSize = 50
	}
	if c.HeroTopFraction <= 0 {
		c.HeroTopFraction = 0.3
	}
	if c.HeroMinWidth <= 0 {
		c.HeroMinWidth = 300
	}
	if c.HeroMinHeight <= 0 {
		c.HeroMinHeight = 200
	}
	if c.ShellWidthFraction <= 0 {
		c.ShellWidthFraction = 0.9
	}
	if c.ShellHeightFraction <= 0 {
		c.ShellHeightFraction = 0.7
	}
	if c.RepeatThreshold <= 0 {
		c.RepeatThreshold = 0.1
	}
	if c.VisualThreshold <= 0 {
		c.VisualThreshold = 0.02
	}
	if c.GridRowTolerance <= 0 {
		c.GridRowTolerance = 0.05
	}
	if c.SectionTolerance <= 0 {
		c.SectionTolerance = 0.1
	}
	if c.AspectTolerance <= 0 {
		c.AspectTolerance = 0.01
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
