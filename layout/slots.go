package layout

import (
	"fmt"
	"math"
	"strings"
)

// commonRatios is the lookup table for aspect simplification, checked in
// order before the denominator search.
var commonRatios = []struct {
	w, h  float64
	label string
}{
	{1, 1, "1:1"},
	{4, 3, "4:3"},
	{16, 9, "16:9"},
	{16, 10, "16:10"},
	{21, 9, "21:9"},
	{3, 2, "3:2"},
	{2, 1, "2:1"},
}

// simplifyRatio matches width/height against common aspect ratios, then
// searches denominators 1..20 for the closest approximation within
// tolerance. Returns "" when nothing qualifies or height is zero.
func simplifyRatio(width, height, tolerance float64) string {
	if height == 0 {
		return ""
	}
	ratio := width / height

	for _, c := range commonRatios {
		if math.Abs(ratio-c.w/c.h) < tolerance {
			return c.label
		}
	}

	const maxDenom = 20
	best := ""
	bestDiff := math.Inf(1)
	for denom := 1; denom <= maxDenom; denom++ {
		num := math.Round(ratio * float64(denom))
		if num == 0 {
			continue
		}
		diff := math.Abs(ratio - num/float64(denom))
		if diff < bestDiff && diff < tolerance {
			bestDiff = diff
			best = fmt.Sprintf("%d:%d", int(num), denom)
		}
	}
	return best
}

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

// normalizeBox converts a pixel box to viewport-relative coordinates
// rounded to 4 decimals. A zero viewport dimension passes the box through
// unchanged.
func normalizeBox(box BoundingBox, vp Viewport) BoundingBox {
	if vp.Width == 0 || vp.Height == 0 {
		return box
	}
	w := float64(vp.Width)
	h := float64(vp.Height)
	return BoundingBox{
		X:      round4(box.X / w),
		Y:      round4(box.Y / h),
		Width:  round4(box.Width / w),
		Height: round4(box.Height / h),
	}
}

// buildSlots filters significant elements down to slots: stable ids,
// normalized boxes, aspect labels for images, repetition flags.
// repeatedGroups is keyed by leader index into elements; membership
// indices refer to the same slice.
func (e *Engine) buildSlots(elements []ElementInfo, vp Viewport, repeatedGroups map[int][]int) []Slot {
	cfg := &e.cfg

	// Position of each element within its repeated group, if any.
	repeatIndex := make(map[int]int)
	for _, group := range repeatedGroups {
		for pos, idx := range group {
			repeatIndex[idx] = pos
		}
	}

	vw := float64(vp.Width)
	vh := float64(vp.Height)

	var slots []Slot
	counter := 0

	for i := range elements {
		el := &elements[i]

		// Small non-text elements are noise.
		if el.Box.Width < cfg.MinSlotSize && el.Box.Height < cfg.MinSlotSize &&
			el.Type != TypeText {
			continue
		}

		// Full-bleed container wrappers are background shells, not content.
		if el.Type == TypeContainer && el.HasChildren &&
			el.Box.Width >= vw*cfg.ShellWidthFraction &&
			el.Box.Height >= vh*cfg.ShellHeightFraction {
			continue
		}

		posRatio := 0.5
		if vh > 0 {
			posRatio = el.Box.Y / vh
		}
		isLarge := el.Box.Width > cfg.HeroMinWidth || el.Box.Height > cfg.HeroMinHeight
		hasHeadline := headlineTags[el.Tag] || classesContain(el.Classes, "headline")

		role := inferRole(el, posRatio, isLarge, hasHeadline, cfg)
		normalized := normalizeRole(role)

		slotType := slotTypeFor(el)
		if slotType == "" {
			continue
		}

		// The counter advances even when a DOM id overrides the generated
		// id, preserving ordering semantics.
		id := fmt.Sprintf("slot-%s-%d", normalized, counter)
		if el.DOMID != "" {
			id = "slot-" + el.DOMID
		}
		counter++

		aspect := ""
		if slotType == TypeImage {
			aspect = simplifyRatio(el.Box.Width, el.Box.Height, cfg.AspectTolerance)
		}

		slot := Slot{
			ID:            id,
			Type:          slotType,
			Role:          normalized,
			BoundingBox:   normalizeBox(el.Box, vp),
			Aspect:        aspect,
			Animations:    el.Animations,
			ComponentInfo: el.Component,
		}
		if pos, ok := repeatIndex[i]; ok {
			p := pos
			slot.Repeated = true
			slot.RepeatedIndex = &p
		}
		slots = append(slots, slot)
	}

	return slots
}

// slotTypeFor resolves the slot type, or "" when the element carries no
// content worth a slot (a childless, textless container).
func slotTypeFor(el *ElementInfo) ElementType {
	switch {
	case el.Type == TypeContainer && el.HasChildren:
		return TypeContainer
	case el.Type == TypeText && (headlineTags[el.Tag] || subheadTags[el.Tag] || el.Tag == "p"):
		return TypeText
	case el.Type == TypeImage:
		return TypeImage
	default:
		if el.Text == "" && !el.HasChildren {
			return ""
		}
		return TypeContainer
	}
}

func classesContain(classes []string, substr string) bool {
	for _, c := range classes {
		if strings.Contains(strings.ToLower(c), substr) {
			return true
		}
	}
	return false
}
