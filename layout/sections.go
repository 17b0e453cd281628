package layout

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// flexFallback is the layout hint for sections with no detectable grid.
func flexFallback() LayoutHints {
	return LayoutHints{
		DisplayType:   "flex",
		FlexDirection: "column",
		Gap:           24,
		Alignment:     "start",
	}
}

// assembleSections bins slots into vertically stacked sections by
// normalized y, resolves each section's role and layout hints, and
// aggregates per-slot animation/component metadata.
func (e *Engine) assembleSections(slots []Slot) []Section {
	tol := e.cfg.SectionTolerance

	bins := make(map[int][]Slot)
	for _, s := range slots {
		bin := int(math.Round(s.BoundingBox.Y / tol))
		bins[bin] = append(bins[bin], s)
	}

	keys := make([]int, 0, len(bins))
	for k := range bins {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var sections []Section
	counter := 0

	for _, k := range keys {
		members := bins[k]
		if len(members) == 0 {
			continue
		}

		role := sectionRole(members)

		hints := detectGridLayout(members, e.cfg.GridRowTolerance)
		if hints == nil {
			fallback := flexFallback()
			hints = &fallback
		}

		sec := Section{
			ID:          fmt.Sprintf("section-%s-%d", role, counter),
			Role:        role,
			LayoutHints: *hints,
			SlotIDs:     make([]string, 0, len(members)),
		}
		counter++

		for _, s := range members {
			sec.SlotIDs = append(sec.SlotIDs, s.ID)
			if s.Animations != nil {
				sec.Animations = append(sec.Animations, SlotAnimation{
					SlotID:    s.ID,
					Animation: s.Animations,
				})
			}
			if s.ComponentInfo != nil {
				sec.Components = append(sec.Components, SlotComponent{
					SlotID:    s.ID,
					Component: s.ComponentInfo,
				})
			}
		}

		sections = append(sections, sec)
	}

	return sections
}

// sectionRole resolves a section's role from its members by priority:
// hero beats card-grid beats content.
func sectionRole(members []Slot) string {
	hasHero, hasCard := false, false
	for _, s := range members {
		if strings.Contains(s.Role, "hero") {
			hasHero = true
		}
		if strings.Contains(s.Role, "card") || strings.Contains(s.Role, "grid") {
			hasCard = true
		}
	}

	switch {
	case hasHero:
		return normalizeRole("hero")
	case hasCard:
		return normalizeRole("card-grid")
	default:
		return normalizeRole("content")
	}
}
