package layout

import (
	"strings"
	"testing"
)

func grid() LayoutHints { return LayoutHints{DisplayType: "grid", Gap: 0.03, Alignment: "center"} }

func TestSummarizeRunLengthDedup(t *testing.T) {
	sections := []Section{
		{Role: "hero", LayoutHints: flexFallback()},
		{Role: "content", LayoutHints: flexFallback()},
		{Role: "content", LayoutHints: flexFallback()},
		{Role: "card-grid", LayoutHints: grid()},
		{Role: "content", LayoutHints: flexFallback()},
	}

	sum := summarize(sections, nil)

	want := []string{"hero", "content", "card-grid", "content"}
	if len(sum.PatternSequence) != len(want) {
		t.Fatalf("sequence = %v, want %v", sum.PatternSequence, want)
	}
	for i := range want {
		if sum.PatternSequence[i] != want[i] {
			t.Fatalf("sequence = %v, want %v", sum.PatternSequence, want)
		}
	}

	// The law: no two identical adjacent entries.
	for i := 1; i < len(sum.PatternSequence); i++ {
		if sum.PatternSequence[i] == sum.PatternSequence[i-1] {
			t.Errorf("adjacent duplicate at %d: %v", i, sum.PatternSequence)
		}
	}

	if sum.PatternType != "hero-content-card-grid-content" {
		t.Errorf("patternType = %q", sum.PatternType)
	}
}

func TestSummarizePatternTypeFirstFive(t *testing.T) {
	var sections []Section
	for _, r := range []string{"navigation", "hero", "content", "card-grid", "content", "footer"} {
		sections = append(sections, Section{Role: r, LayoutHints: flexFallback()})
	}

	sum := summarize(sections, nil)
	if n := strings.Count(sum.PatternType, "-"); len(sum.PatternSequence) != 6 || sum.PatternType == "" {
		t.Fatalf("sequence = %v, patternType = %q (%d hyphens)", sum.PatternSequence, sum.PatternType, n)
	}
	// Only the first 5 sequence entries join the pattern type.
	if strings.HasSuffix(sum.PatternType, "footer") {
		t.Errorf("patternType %q should not include the 6th entry", sum.PatternType)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	sum := summarize(nil, nil)
	if sum.PatternType != "unknown" {
		t.Errorf("patternType = %q, want unknown", sum.PatternType)
	}
	if sum.DominantLayout != "flex" {
		t.Errorf("dominantLayout = %q, want flex", sum.DominantLayout)
	}
	if sum.SectionCount != 0 || sum.SlotCount != 0 {
		t.Errorf("counts = %d/%d, want 0/0", sum.SectionCount, sum.SlotCount)
	}
}

func TestSummarizeDominantLayout(t *testing.T) {
	sections := []Section{
		{Role: "content", LayoutHints: grid()},
		{Role: "content", LayoutHints: grid()},
		{Role: "content", LayoutHints: flexFallback()},
	}

	sum := summarize(sections, nil)
	if sum.DominantLayout != "grid" {
		t.Errorf("dominantLayout = %q, want grid", sum.DominantLayout)
	}
	if sum.LayoutDistribution["grid"] != 2 || sum.LayoutDistribution["flex"] != 1 {
		t.Errorf("distribution = %v", sum.LayoutDistribution)
	}
}

func TestSummarizeDominantLayoutTieBreaksFirstSeen(t *testing.T) {
	sections := []Section{
		{Role: "content", LayoutHints: grid()},
		{Role: "content", LayoutHints: flexFallback()},
	}

	sum := summarize(sections, nil)
	if sum.DominantLayout != "grid" {
		t.Errorf("dominantLayout = %q, want grid (first seen)", sum.DominantLayout)
	}
}

func TestSummarizeFeatures(t *testing.T) {
	idx := 0
	slots := []Slot{
		{ID: "a", Role: "navigation", Type: TypeContainer},
		{ID: "b", Role: "footer", Type: TypeContainer},
		{ID: "c", Role: "image", Type: TypeImage},
		{ID: "d", Role: "card", Type: TypeContainer, Repeated: true, RepeatedIndex: &idx},
	}
	sections := []Section{
		{Role: "hero", LayoutHints: flexFallback()},
		{Role: "card-grid", LayoutHints: grid()},
	}

	f := summarize(sections, slots).Features
	if !f.HasNavigation || !f.HasHero || !f.HasCardGrid || !f.HasFooter ||
		!f.HasImages || !f.HasRepeatedGroups {
		t.Errorf("features = %+v, want all true", f)
	}
}
