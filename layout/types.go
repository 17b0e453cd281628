package layout

// Viewport is the normalization basis for all relative coordinates.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BoundingBox is a rectangle. The collector produces pixel-space boxes;
// everything after the slot builder uses the viewport-normalized form
// (components rounded to 4 decimals).
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ElementType classifies a collected element.
type ElementType string

const (
	TypeImage     ElementType = "image"
	TypeText      ElementType = "text"
	TypeContainer ElementType = "container"
)

// ElementInfo is the immutable snapshot of one DOM element, created once
// per qualifying node during a collection pass.
type ElementInfo struct {
	Tag         string
	Box         BoundingBox // pixel space
	Text        string
	Classes     []string
	DOMID       string
	AriaRole    string
	Type        ElementType
	HasChildren bool
	Styles      map[string]string
	Animations  map[string]any
	Component   map[string]any
}

// Slot is an atomic content unit with a normalized position.
type Slot struct {
	ID            string         `json:"id"`
	Type          ElementType    `json:"type"`
	Role          string         `json:"role"`
	BoundingBox   BoundingBox    `json:"boundingBox"`
	Aspect        string         `json:"aspect,omitempty"` // image slots only
	Repeated      bool           `json:"repeated,omitempty"`
	RepeatedIndex *int           `json:"repeatedIndex,omitempty"`
	Animations    map[string]any `json:"animations,omitempty"`
	ComponentInfo map[string]any `json:"componentInfo,omitempty"`
}

// LayoutHints describes a section's layout strategy: either a detected
// grid row or the flex fallback.
type LayoutHints struct {
	DisplayType   string  `json:"displayType"`
	GridColumns   int     `json:"gridColumns,omitempty"`
	FlexDirection string  `json:"flexDirection,omitempty"`
	Gap           float64 `json:"gap"`
	Alignment     string  `json:"alignment"`
}

// SlotAnimation ties a slot's animation descriptor to its id for
// section-level aggregation.
type SlotAnimation struct {
	SlotID    string         `json:"slotId"`
	Animation map[string]any `json:"animation"`
}

// SlotComponent ties a slot's component descriptor to its id.
type SlotComponent struct {
	SlotID    string         `json:"slotId"`
	Component map[string]any `json:"component"`
}

// Section is a vertically stacked group of slots representing one visual
// region. Sections partition the slot set by vertical position.
type Section struct {
	ID          string          `json:"id"`
	Role        string          `json:"role"`
	LayoutHints LayoutHints     `json:"layoutHints"`
	SlotIDs     []string        `json:"slotIds"`
	Animations  []SlotAnimation `json:"animations,omitempty"`
	Components  []SlotComponent `json:"components,omitempty"`
}

// RepeatedItem is one occurrence of a repeated pattern.
type RepeatedItem struct {
	Index   int      `json:"index"`
	SlotIDs []string `json:"slotIds"`
}

// RepeatedGroup is a set of same-shaped slots interpreted as one repeated
// pattern (cards in a grid, list rows).
type RepeatedGroup struct {
	Role  string         `json:"role"`
	Count int            `json:"count"`
	Items []RepeatedItem `json:"items"`
}

// Grouping aggregates repetition and proximity clusters. Visual groups are
// not mutually exclusive with sections or repeated groups.
type Grouping struct {
	RepeatedGroups map[string]RepeatedGroup `json:"repeatedGroups"`
	VisualGroups   map[string][]string      `json:"visualGroups"`
	GroupCount     int                      `json:"groupCount"`
}

// Features are independent boolean predicates over slot and section roles.
type Features struct {
	HasNavigation     bool `json:"hasNavigation"`
	HasHero           bool `json:"hasHero"`
	HasCardGrid       bool `json:"hasCardGrid"`
	HasFooter         bool `json:"hasFooter"`
	HasImages         bool `json:"hasImages"`
	HasRepeatedGroups bool `json:"hasRepeatedGroups"`
}

// PatternSummary is the derived high-level description of a page's
// section-role sequence and layout strategy.
type PatternSummary struct {
	PatternType        string         `json:"patternType"`
	PatternSequence    []string       `json:"patternSequence"`
	SectionCount       int            `json:"sectionCount"`
	SlotCount          int            `json:"slotCount"`
	Features           Features       `json:"features"`
	DominantLayout     string         `json:"dominantLayout"`
	LayoutDistribution map[string]int `json:"layoutDistribution"`
}

// Result is the complete layout analysis of one page. A Result is always
// structurally valid: degraded analyses carry a non-empty Error instead of
// failing.
type Result struct {
	ID             string         `json:"id"`
	ScreenType     string         `json:"screenType"`
	Viewport       Viewport       `json:"viewport"`
	PatternSummary PatternSummary `json:"patternSummary"`
	Grouping       Grouping       `json:"grouping"`
	Sections       []Section      `json:"sections"`
	Slots          []Slot         `json:"slots"`
	Error          string         `json:"error,omitempty"`
}
