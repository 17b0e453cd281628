package layout

import "context"

// StyleKeys is the computed-style subset the engine reads per element.
var StyleKeys = []string{
	"display",
	"flexDirection",
	"gridTemplateColumns",
	"gap",
	"alignItems",
	"justifyContent",
	"backgroundImage",
}

// PageAccessor is the read-only capability the engine consumes. It is
// provided by a browser-automation collaborator (see the browser package)
// or by a synthetic in-memory implementation in tests. The engine performs
// no navigation and no waiting: the page must already be stable.
type PageAccessor interface {
	// Viewport returns the page viewport in pixels.
	Viewport(ctx context.Context) (Viewport, error)

	// Elements enumerates up to max element handles matching selector,
	// in document order.
	Elements(ctx context.Context, selector string, max int) ([]ElementHandle, error)
}

// ElementHandle exposes per-element introspection. Every method is
// independently fallible: a failing call drops that element only, never
// the whole pass.
type ElementHandle interface {
	TagName() (string, error)

	// BoundingBox returns the pixel-space box, or nil if the element has
	// no rendered box.
	BoundingBox() (*BoundingBox, error)

	TextContent() (string, error)
	ClassList() ([]string, error)
	ID() (string, error)
	AriaRole() (string, error)
	IsVisible() (bool, error)
	HasChildren() (bool, error)

	// ComputedStyle resolves the given style keys.
	ComputedStyle(keys []string) (map[string]string, error)

	// DetectAnimation returns a descriptor of CSS animations, transitions
	// or transforms on the element, or nil when none apply.
	DetectAnimation() (map[string]any, error)

	// DetectComponent returns framework/component hints (data attributes,
	// component-like class names), or nil when none apply.
	DetectComponent() (map[string]any, error)
}
