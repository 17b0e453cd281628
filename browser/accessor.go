package browser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-rod/rod"

	"github.com/hazyhaar/domlens/layout"
)

// Accessor exposes a prepared Page as a layout.PageAccessor. All element
// introspection happens through per-element JS evaluation, matching what
// the engine would see in a real browser.
type Accessor struct {
	page *Page
}

// NewAccessor wraps a Page. The page must already be navigated and
// settled; the engine does no waiting of its own.
func NewAccessor(page *Page) *Accessor {
	return &Accessor{page: page}
}

var _ layout.PageAccessor = (*Accessor)(nil)

// Viewport reads the page's inner dimensions.
func (a *Accessor) Viewport(ctx context.Context) (layout.Viewport, error) {
	res, err := a.page.Page.Context(ctx).Eval(
		`() => JSON.stringify({width: window.innerWidth, height: window.innerHeight})`)
	if err != nil {
		return layout.Viewport{}, fmt.Errorf("browser: viewport: %w", err)
	}
	var vp layout.Viewport
	if err := json.Unmarshal([]byte(res.Value.Str()), &vp); err != nil {
		return layout.Viewport{}, fmt.Errorf("browser: viewport decode: %w", err)
	}
	return vp, nil
}

// Elements enumerates element handles in document order, capped at max.
func (a *Accessor) Elements(ctx context.Context, selector string, max int) ([]layout.ElementHandle, error) {
	els, err := a.page.Page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("browser: query %q: %w", selector, err)
	}
	if max > 0 && len(els) > max {
		els = els[:max]
	}

	handles := make([]layout.ElementHandle, len(els))
	for i, el := range els {
		handles[i] = &elementHandle{el: el.Context(ctx)}
	}
	return handles, nil
}

// elementHandle adapts a rod element to layout.ElementHandle.
type elementHandle struct {
	el *rod.Element
}

func (h *elementHandle) evalString(js string, args ...any) (string, error) {
	res, err := h.el.Eval(js, args...)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (h *elementHandle) TagName() (string, error) {
	return h.evalString(`() => this.tagName.toLowerCase()`)
}

func (h *elementHandle) BoundingBox() (*layout.BoundingBox, error) {
	s, err := h.evalString(`() => {
		const r = this.getBoundingClientRect();
		return JSON.stringify({x: r.x, y: r.y, width: r.width, height: r.height});
	}`)
	if err != nil {
		return nil, err
	}
	var box layout.BoundingBox
	if err := json.Unmarshal([]byte(s), &box); err != nil {
		return nil, err
	}
	return &box, nil
}

func (h *elementHandle) TextContent() (string, error) {
	return h.evalString(`() => this.textContent || ''`)
}

func (h *elementHandle) ClassList() ([]string, error) {
	s, err := h.evalString(`() => JSON.stringify(Array.from(this.classList || []))`)
	if err != nil {
		return nil, err
	}
	var classes []string
	if err := json.Unmarshal([]byte(s), &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (h *elementHandle) ID() (string, error) {
	return h.evalString(`() => this.id || ''`)
}

func (h *elementHandle) AriaRole() (string, error) {
	return h.evalString(`() => this.getAttribute('role') || ''`)
}

func (h *elementHandle) IsVisible() (bool, error) {
	res, err := h.el.Eval(`() => {
		const style = window.getComputedStyle(this);
		return style.display !== 'none' && style.visibility !== 'hidden' &&
			style.opacity !== '0' && this.offsetWidth > 0 && this.offsetHeight > 0;
	}`)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (h *elementHandle) HasChildren() (bool, error) {
	res, err := h.el.Eval(`() => this.children.length > 0`)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (h *elementHandle) ComputedStyle(keys []string) (map[string]string, error) {
	s, err := h.evalString(`(keys) => {
		const style = window.getComputedStyle(this);
		const out = {};
		for (const k of keys) {
			out[k] = style[k] || '';
		}
		return JSON.stringify(out);
	}`, keys)
	if err != nil {
		return nil, err
	}
	styles := map[string]string{}
	if err := json.Unmarshal([]byte(s), &styles); err != nil {
		return nil, err
	}
	return styles, nil
}

func (h *elementHandle) DetectAnimation() (map[string]any, error) {
	return h.evalObject(`() => {
		const style = window.getComputedStyle(this);
		const props = {
			animation: style.animation,
			animationName: style.animationName,
			animationDuration: style.animationDuration,
			animationTimingFunction: style.animationTimingFunction,
			animationDelay: style.animationDelay,
			animationIterationCount: style.animationIterationCount,
			animationDirection: style.animationDirection,
			transition: style.transition,
			transitionProperty: style.transitionProperty,
			transitionDuration: style.transitionDuration,
			transitionTimingFunction: style.transitionTimingFunction,
			transform: style.transform,
		};

		const active = (v) => v && v !== 'none' && v !== '';
		if (!active(props.animation) && !active(props.transition) && !active(props.transform)) {
			return JSON.stringify(null);
		}

		const cleaned = {};
		for (const [key, value] of Object.entries(props)) {
			if (active(value)) {
				cleaned[key] = value;
			}
		}
		return JSON.stringify(Object.keys(cleaned).length > 0 ? cleaned : null);
	}`)
}

func (h *elementHandle) DetectComponent() (map[string]any, error) {
	return h.evalObject(`() => {
		const data = {};

		const reactKey = this.getAttribute('data-reactroot') ||
			this.getAttribute('data-react-component') ||
			this.getAttribute('data-component');
		if (reactKey) {
			data.reactComponent = true;
			data.componentId = reactKey;
		}

		const dataAttrs = {};
		for (const attr of this.attributes) {
			if (attr.name.startsWith('data-')) {
				const key = attr.name.replace('data-', '');
				if (!['testid', 'id', 'cy', 'qa'].includes(key)) {
					dataAttrs[key] = attr.value;
				}
			}
		}
		if (Object.keys(dataAttrs).length > 0) {
			data.dataAttributes = dataAttrs;
		}

		const classList = Array.from(this.classList || []);
		const componentClasses = classList.filter(cls =>
			cls.includes('component') ||
			cls.includes('widget') ||
			/^[A-Z][a-zA-Z]*$/.test(cls));
		if (componentClasses.length > 0) {
			data.componentClasses = componentClasses;
		}

		if (this.hasAttribute('data-v-')) {
			data.vueComponent = true;
		}
		if (this.hasAttribute('ng-version') || this.hasAttribute('_ngcontent')) {
			data.angularComponent = true;
		}

		return JSON.stringify(Object.keys(data).length > 0 ? data : null);
	}`)
}

// evalObject runs JS that stringifies an object or null, and decodes it.
func (h *elementHandle) evalObject(js string) (map[string]any, error) {
	s, err := h.evalString(js)
	if err != nil {
		return nil, err
	}
	if s == "" || s == "null" {
		return nil, nil
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}
