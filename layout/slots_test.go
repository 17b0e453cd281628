package layout

import "testing"

func TestSimplifyRatio(t *testing.T) {
	tests := []struct {
		w, h float64
		want string
	}{
		{1600, 900, "16:9"},
		{500, 500, "1:1"},
		{800, 600, "4:3"},
		{1600, 1000, "16:10"},
		{2100, 900, "21:9"},
		{600, 400, "3:2"},
		{1000, 500, "2:1"},
		{37, 500, "1:14"}, // closest denominator search
		{500, 0, ""},      // zero height never crashes
	}

	for _, tt := range tests {
		got := simplifyRatio(tt.w, tt.h, 0.01)
		if got != tt.want {
			t.Errorf("simplifyRatio(%v, %v) = %q, want %q", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestSimplifyRatioTolerance(t *testing.T) {
	// Slightly off 16:9 still matches within tolerance.
	if got := simplifyRatio(1601, 900, 0.01); got != "16:9" {
		t.Errorf("1601x900 = %q, want 16:9", got)
	}
	// An irrational-ish ratio far from any small fraction yields nothing
	// with a tight tolerance.
	if got := simplifyRatio(1000, 317, 0.0001); got != "" {
		t.Errorf("1000x317 tight tolerance = %q, want empty", got)
	}
}

func TestNormalizeBox(t *testing.T) {
	vp := Viewport{Width: 1920, Height: 1080}
	got := normalizeBox(BoundingBox{X: 960, Y: 540, Width: 123, Height: 77}, vp)

	want := BoundingBox{X: 0.5, Y: 0.5, Width: 0.0641, Height: 0.0713}
	if got != want {
		t.Errorf("normalizeBox = %+v, want %+v", got, want)
	}
}

func TestNormalizeBoxZeroViewport(t *testing.T) {
	box := BoundingBox{X: 10, Y: 20, Width: 30, Height: 40}
	if got := normalizeBox(box, Viewport{}); got != box {
		t.Errorf("zero viewport should pass box through, got %+v", got)
	}
}

func TestBuildSlotsIDGeneration(t *testing.T) {
	eng := New(Config{})
	vp := Viewport{Width: 1000, Height: 1000}

	elements := []ElementInfo{
		{Tag: "p", Type: TypeText, Text: "first", Box: BoundingBox{X: 0, Y: 500, Width: 200, Height: 40}},
		{Tag: "p", Type: TypeText, Text: "second", DOMID: "intro", Box: BoundingBox{X: 0, Y: 560, Width: 200, Height: 40}},
		{Tag: "p", Type: TypeText, Text: "third", Box: BoundingBox{X: 0, Y: 620, Width: 200, Height: 40}},
	}

	slots := eng.buildSlots(elements, vp, nil)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}

	if slots[0].ID != "slot-content-0" {
		t.Errorf("slot 0 id = %q", slots[0].ID)
	}
	// DOM id overrides the generated id.
	if slots[1].ID != "slot-intro" {
		t.Errorf("slot 1 id = %q", slots[1].ID)
	}
	// The counter advanced past the overridden slot.
	if slots[2].ID != "slot-content-2" {
		t.Errorf("slot 2 id = %q", slots[2].ID)
	}
}

func TestBuildSlotsFiltering(t *testing.T) {
	eng := New(Config{})
	vp := Viewport{Width: 1000, Height: 1000}

	elements := []ElementInfo{
		// Small non-text element: dropped.
		{Tag: "div", Type: TypeContainer, HasChildren: true, Box: BoundingBox{X: 0, Y: 0, Width: 40, Height: 40}},
		// Small text element: kept.
		{Tag: "p", Type: TypeText, Text: "tiny", Box: BoundingBox{X: 0, Y: 400, Width: 40, Height: 20}},
		// Full-bleed container shell: dropped.
		{Tag: "div", Type: TypeContainer, HasChildren: true, Box: BoundingBox{X: 0, Y: 0, Width: 950, Height: 750}},
		// Childless, textless container: dropped.
		{Tag: "div", Type: TypeContainer, Box: BoundingBox{X: 0, Y: 600, Width: 100, Height: 100}},
	}

	slots := eng.buildSlots(elements, vp, nil)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d: %+v", len(slots), slots)
	}
	if slots[0].Type != TypeText {
		t.Errorf("surviving slot type = %q, want text", slots[0].Type)
	}
}

func TestBuildSlotsAspectOnlyForImages(t *testing.T) {
	eng := New(Config{})
	vp := Viewport{Width: 1000, Height: 1000}

	elements := []ElementInfo{
		{Tag: "img", Type: TypeImage, Box: BoundingBox{X: 0, Y: 500, Width: 320, Height: 180}},
		{Tag: "div", Type: TypeContainer, HasChildren: true, Box: BoundingBox{X: 0, Y: 700, Width: 320, Height: 180}},
	}

	slots := eng.buildSlots(elements, vp, nil)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[0].Aspect != "16:9" {
		t.Errorf("image aspect = %q, want 16:9", slots[0].Aspect)
	}
	if slots[1].Aspect != "" {
		t.Errorf("container aspect = %q, want empty", slots[1].Aspect)
	}
}

func TestBuildSlotsNormalizedBounds(t *testing.T) {
	eng := New(Config{})
	vp := Viewport{Width: 1440, Height: 900}

	elements := []ElementInfo{
		{Tag: "p", Type: TypeText, Text: "x", Box: BoundingBox{X: 333, Y: 444, Width: 555, Height: 66}},
	}

	slots := eng.buildSlots(elements, vp, nil)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	b := slots[0].BoundingBox
	for name, v := range map[string]float64{"x": b.X, "y": b.Y, "width": b.Width, "height": b.Height} {
		if v < 0 {
			t.Errorf("%s = %v, want >= 0", name, v)
		}
		if round4(v) != v {
			t.Errorf("%s = %v not rounded to 4 decimals", name, v)
		}
	}
}
