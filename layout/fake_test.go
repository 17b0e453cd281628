package layout

import "context"

// fakePage is a synthetic in-memory PageAccessor for engine tests.
type fakePage struct {
	viewport    Viewport
	viewportErr error
	elements    []ElementHandle
	elementsErr error
	panicOnEnum bool
}

func (p *fakePage) Viewport(context.Context) (Viewport, error) {
	if p.viewportErr != nil {
		return Viewport{}, p.viewportErr
	}
	return p.viewport, nil
}

func (p *fakePage) Elements(_ context.Context, _ string, max int) ([]ElementHandle, error) {
	if p.panicOnEnum {
		panic("accessor gone")
	}
	if p.elementsErr != nil {
		return nil, p.elementsErr
	}
	if len(p.elements) > max {
		return p.elements[:max], nil
	}
	return p.elements, nil
}

// fakeElement is a synthetic ElementHandle. newEl returns a visible
// element; adjust fields directly for edge cases.
type fakeElement struct {
	tag         string
	box         *BoundingBox
	text        string
	classes     []string
	domID       string
	ariaRole    string
	visible     bool
	hasChildren bool
	styles      map[string]string
	animations  map[string]any
	component   map[string]any

	// errs simulates per-method introspection failures, keyed by method
	// name ("tag", "box", "text", ...).
	errs map[string]error
}

func newEl(tag string, x, y, w, h float64) *fakeElement {
	return &fakeElement{
		tag:     tag,
		box:     &BoundingBox{X: x, Y: y, Width: w, Height: h},
		visible: true,
		styles:  map[string]string{},
	}
}

func (e *fakeElement) fail(method string) error {
	if e.errs == nil {
		return nil
	}
	return e.errs[method]
}

func (e *fakeElement) TagName() (string, error) {
	return e.tag, e.fail("tag")
}

func (e *fakeElement) BoundingBox() (*BoundingBox, error) {
	return e.box, e.fail("box")
}

func (e *fakeElement) TextContent() (string, error) {
	return e.text, e.fail("text")
}

func (e *fakeElement) ClassList() ([]string, error) {
	return e.classes, e.fail("classes")
}

func (e *fakeElement) ID() (string, error) {
	return e.domID, e.fail("id")
}

func (e *fakeElement) AriaRole() (string, error) {
	return e.ariaRole, e.fail("aria")
}

func (e *fakeElement) IsVisible() (bool, error) {
	return e.visible, e.fail("visible")
}

func (e *fakeElement) HasChildren() (bool, error) {
	return e.hasChildren, e.fail("children")
}

func (e *fakeElement) ComputedStyle([]string) (map[string]string, error) {
	return e.styles, e.fail("styles")
}

func (e *fakeElement) DetectAnimation() (map[string]any, error) {
	return e.animations, e.fail("animation")
}

func (e *fakeElement) DetectComponent() (map[string]any, error) {
	return e.component, e.fail("component")
}
