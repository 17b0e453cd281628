package layout

import "strings"

// summarize derives the high-level pattern description: a run-length
// deduplicated role sequence, feature flags, and the dominant layout
// strategy across sections.
func summarize(sections []Section, slots []Slot) PatternSummary {
	sequence := []string{}
	for _, sec := range sections {
		role := normalizeRole(sec.Role)
		if len(sequence) == 0 || sequence[len(sequence)-1] != role {
			sequence = append(sequence, role)
		}
	}

	patternType := "unknown"
	if len(sequence) > 0 {
		head := sequence
		if len(head) > 5 {
			head = head[:5]
		}
		patternType = strings.Join(head, "-")
	}

	features := Features{}
	for _, s := range slots {
		role := normalizeRole(s.Role)
		if strings.Contains(role, "navigation") {
			features.HasNavigation = true
		}
		if strings.Contains(role, "footer") {
			features.HasFooter = true
		}
		if s.Type == TypeImage {
			features.HasImages = true
		}
		if s.Repeated {
			features.HasRepeatedGroups = true
		}
	}
	for _, sec := range sections {
		role := normalizeRole(sec.Role)
		if strings.Contains(role, "hero") {
			features.HasHero = true
		}
		if strings.Contains(role, "card-grid") {
			features.HasCardGrid = true
		}
	}

	distribution := map[string]int{}
	for _, sec := range sections {
		display := sec.LayoutHints.DisplayType
		if display == "" {
			display = "flex"
		}
		distribution[display]++
	}

	// Ties break by first-seen section order; flex when no sections exist.
	dominant := "flex"
	best := 0
	seen := map[string]bool{}
	for _, sec := range sections {
		display := sec.LayoutHints.DisplayType
		if display == "" {
			display = "flex"
		}
		if seen[display] {
			continue
		}
		seen[display] = true
		if distribution[display] > best {
			best = distribution[display]
			dominant = display
		}
	}

	return PatternSummary{
		PatternType:        patternType,
		PatternSequence:    sequence,
		SectionCount:       len(sections),
		SlotCount:          len(slots),
		Features:           features,
		DominantLayout:     dominant,
		LayoutDistribution: distribution,
	}
}
