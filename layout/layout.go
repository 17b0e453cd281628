// Package layout infers the visual structure of a rendered page: a
// viewport-relative map of content sections, the atomic content units
// inside them (slots), detected repetition, and a high-level pattern
// summary.
//
// The engine is a pure, synchronous batch pipeline over a read-only
// PageAccessor. It performs no navigation, no network I/O and no
// persistence; all waiting for page readiness is the caller's
// responsibility. Each Analyze call works from a fresh snapshot, so
// concurrent calls against independent accessors are safe.
//
// Failures never propagate: per-element extraction errors drop the
// element, an empty page yields an empty-shell Result, and a pipeline
// failure yields a degraded Result with a populated Error field.
//
// Usage:
//
//	eng := layout.New(layout.Config{})
//	res := eng.Analyze(ctx, accessor, layout.Options{Name: "landing v2"})
//	fmt.Println(res.ScreenType, res.PatternSummary.PatternType)
package layout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// fallbackViewport is reported when the accessor cannot be read at all.
var fallbackViewport = Viewport{Width: 1920, Height: 1000}

// Engine runs layout analysis passes. Engines are stateless between
// calls and safe for concurrent use.
type Engine struct {
	cfg    Config
	logger *slog.Logger
}

// New creates an Engine with the given configuration.
func New(cfg Config) *Engine {
	cfg.defaults()
	return &Engine{cfg: cfg, logger: cfg.Logger}
}

// Options identify the analyzed page in the produced Result.
type Options struct {
	// ComponentID is the caller-supplied identifier. Default: "unknown"
	// for degraded results, "component-001" otherwise.
	ComponentID string

	// Name, when set, overrides the result id with its slug.
	Name string
}

func (o Options) resultID() string {
	if o.Name != "" {
		slug := strings.ToLower(o.Name)
		slug = strings.ReplaceAll(slug, " ", "-")
		slug = strings.ReplaceAll(slug, "_", "-")
		return slug
	}
	if o.ComponentID != "" {
		return o.ComponentID
	}
	return "component-001"
}

func (o Options) fallbackID() string {
	if o.ComponentID != "" {
		return o.ComponentID
	}
	return "unknown"
}

// Analyze runs the full pipeline against a stable page. It always
// returns a structurally valid Result; degraded analyses carry a
// non-empty Error.
func (e *Engine) Analyze(ctx context.Context, page PageAccessor, opts Options) (res *Result) {
	// The engine promises batch callers a valid Result no matter what,
	// including accessor implementations that panic mid-pass.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("layout: analysis panicked", "panic", r)
			res = degradedResult(opts, fallbackViewport, fmt.Sprintf("panic: %v", r))
		}
	}()

	vp, err := page.Viewport(ctx)
	if err != nil {
		e.logger.Error("layout: viewport read failed", "error", err)
		return degradedResult(opts, fallbackViewport, fmt.Sprintf("viewport: %v", err))
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		vp = fallbackViewport
	}

	elements, err := e.collectElements(ctx, page)
	if err != nil {
		e.logger.Error("layout: collection failed", "error", err)
		return degradedResult(opts, fallbackViewport, err.Error())
	}

	if len(elements) == 0 {
		e.logger.Info("layout: no visible elements", "id", opts.fallbackID())
		return emptyResult(opts, vp)
	}

	// Significance floor: tiny elements never become slots and never
	// participate in repetition detection.
	significant := elements[:0:0]
	for _, el := range elements {
		if el.Box.Width >= e.cfg.MinElementSize && el.Box.Height >= e.cfg.MinElementSize {
			significant = append(significant, el)
		}
	}

	repeated := detectRepeatedGroups(significant, e.cfg.RepeatThreshold)
	slots := e.buildSlots(significant, vp, repeated)
	sections := e.assembleSections(slots)
	screenType := inferScreenType(significant, sections)
	visualGroups := detectVisualGroups(slots, e.cfg.VisualThreshold)

	if slots == nil {
		slots = []Slot{}
	}
	if sections == nil {
		sections = []Section{}
	}

	result := &Result{
		ID:             opts.resultID(),
		ScreenType:     screenType,
		Viewport:       vp,
		PatternSummary: summarize(sections, slots),
		Grouping: Grouping{
			RepeatedGroups: buildRepeatedGroupMeta(slots),
			VisualGroups:   visualGroups,
			GroupCount:     len(visualGroups),
		},
		Sections: sections,
		Slots:    slots,
	}

	e.logger.Info("layout: analysis complete",
		"id", result.ID,
		"screen_type", screenType,
		"sections", len(sections),
		"slots", len(slots))
	return result
}

// emptyResult is the well-formed shell for pages with no visible
// elements. Not an error.
func emptyResult(opts Options, vp Viewport) *Result {
	return &Result{
		ID:         opts.fallbackID(),
		ScreenType: "page",
		Viewport:   vp,
		PatternSummary: PatternSummary{
			PatternType:        "empty",
			PatternSequence:    []string{},
			DominantLayout:     "flex",
			LayoutDistribution: map[string]int{},
		},
		Grouping: Grouping{
			RepeatedGroups: map[string]RepeatedGroup{},
			VisualGroups:   map[string][]string{},
		},
		Sections: []Section{},
		Slots:    []Slot{},
	}
}

// degradedResult is the default shape returned when the pipeline itself
// fails. The error string is carried in the Result instead of raised.
func degradedResult(opts Options, vp Viewport, errMsg string) *Result {
	res := emptyResult(opts, vp)
	res.PatternSummary.PatternType = "unknown"
	res.Error = errMsg
	return res
}
