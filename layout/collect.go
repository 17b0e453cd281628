package layout

import (
	"context"
	"fmt"
	"strings"
)

// outcome is the per-element collection result: either an ElementInfo or
// a skip reason. Collection never fails the whole pass because one node
// failed.
type outcome struct {
	Info *ElementInfo
	Skip string
}

func skipped(reason string) outcome { return outcome{Skip: reason} }

func skipErr(stage string, err error) outcome {
	return outcome{Skip: fmt.Sprintf("%s: %v", stage, err)}
}

// collectElements materializes up to cfg.MaxElements visible,
// non-structural elements as ElementInfo snapshots, in document order.
func (e *Engine) collectElements(ctx context.Context, page PageAccessor) ([]ElementInfo, error) {
	handles, err := page.Elements(ctx, "body *", e.cfg.MaxElements)
	if err != nil {
		return nil, fmt.Errorf("layout: enumerate elements: %w", err)
	}

	var elements []ElementInfo
	for i, h := range handles {
		out := collectElement(h)
		if out.Skip != "" {
			e.logger.Debug("layout: element skipped", "index", i, "reason", out.Skip)
			continue
		}
		elements = append(elements, *out.Info)
	}

	e.logger.Debug("layout: collected elements",
		"candidates", len(handles), "kept", len(elements))
	return elements, nil
}

// collectElement snapshots a single element. Any introspection failure
// yields a skip outcome, bounding the blast radius to this one node.
func collectElement(h ElementHandle) outcome {
	tag, err := h.TagName()
	if err != nil {
		return skipErr("tag", err)
	}
	tag = strings.ToLower(tag)
	if structuralTags[tag] {
		return skipped("structural tag " + tag)
	}

	box, err := h.BoundingBox()
	if err != nil {
		return skipErr("bounding box", err)
	}
	if box == nil || box.Width == 0 || box.Height == 0 {
		return skipped("zero rendered area")
	}

	visible, err := h.IsVisible()
	if err != nil {
		return skipErr("visibility", err)
	}
	if !visible {
		return skipped("not visible")
	}

	text, err := h.TextContent()
	if err != nil {
		return skipErr("text", err)
	}

	classes, err := h.ClassList()
	if err != nil {
		return skipErr("classes", err)
	}

	domID, err := h.ID()
	if err != nil {
		return skipErr("id", err)
	}

	ariaRole, err := h.AriaRole()
	if err != nil {
		return skipErr("aria role", err)
	}

	hasChildren, err := h.HasChildren()
	if err != nil {
		return skipErr("children", err)
	}

	styles, err := h.ComputedStyle(StyleKeys)
	if err != nil {
		return skipErr("computed style", err)
	}
	if styles == nil {
		styles = map[string]string{}
	}

	// Animation and component detection are best-effort hints: failures
	// degrade to "no hint", not to a skipped element.
	animations, err := h.DetectAnimation()
	if err != nil {
		animations = nil
	}
	component, err := h.DetectComponent()
	if err != nil {
		component = nil
	}

	return outcome{Info: &ElementInfo{
		Tag:         tag,
		Box:         *box,
		Text:        strings.TrimSpace(text),
		Classes:     classes,
		DOMID:       domID,
		AriaRole:    ariaRole,
		Type:        classifyElementType(tag, classes, styles),
		HasChildren: hasChildren,
		Styles:      styles,
		Animations:  animations,
		Component:   component,
	}}
}
