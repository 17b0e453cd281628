package layout

import "strings"

// Keyword and tag tables are static configuration, shared by every
// analysis pass.

// structuralTags never produce elements: they carry no rendered content.
var structuralTags = map[string]bool{
	"script": true, "style": true, "meta": true, "link": true,
	"noscript": true, "template": true, "head": true, "html": true,
}

var imageTags = map[string]bool{"img": true, "picture": true, "svg": true}

var textTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "span": true, "a": true, "button": true, "label": true,
}

var headlineTags = map[string]bool{"h1": true, "h2": true, "h3": true}

var subheadTags = map[string]bool{"h4": true, "h5": true, "h6": true}

// bgImageClassTokens are utility-class markers for background images
// (Tailwind-style) that make a container behave like an image.
var bgImageClassTokens = []string{"bg-cover", "bg-image", "bg-img", "hero-image"}

var authTextKeywords = []string{
	"sign in", "sign-in", "signin",
	"log in", "login", "log-in",
	"password", "email",
	"create account", "sign up", "signup", "sign-up",
}

var authClassKeywords = []string{"signin", "login", "auth"}

var dashboardKeywords = []string{
	"dashboard", "analytics", "metrics", "admin", "admin-panel",
	"control-panel", "admin panel", "control panel",
}

// classifyElementType derives the element type. Decision order matters:
// image tags win, then background-image containers, then text tags.
func classifyElementType(tag string, classes []string, styles map[string]string) ElementType {
	if imageTags[tag] {
		return TypeImage
	}

	bg := styles["backgroundImage"]
	if bg != "" && bg != "none" {
		return TypeImage
	}
	classStr := strings.ToLower(strings.Join(classes, " "))
	for _, token := range bgImageClassTokens {
		if strings.Contains(classStr, token) {
			return TypeImage
		}
	}

	if textTags[tag] {
		return TypeText
	}
	return TypeContainer
}

// inferRole guesses a raw semantic role from element properties. First
// match wins; the result still goes through normalizeRole.
func inferRole(el *ElementInfo, posRatio float64, isLarge, hasHeadline bool, cfg *Config) string {
	classStr := strings.ToLower(strings.Join(el.Classes, " "))
	textLower := strings.ToLower(el.Text)

	if strings.Contains(classStr, "hero") || strings.Contains(textLower, "hero") ||
		(posRatio < cfg.HeroTopFraction && isLarge && hasHeadline) {
		if el.HasChildren {
			return "hero-split"
		}
		return "hero"
	}

	if strings.Contains(classStr, "card") || strings.Contains(textLower, "card") {
		return "card-item"
	}

	if strings.Contains(classStr, "grid") || el.Styles["display"] == "grid" {
		return "card-grid"
	}

	if el.Tag == "nav" || strings.Contains(classStr, "nav") || el.AriaRole == "navigation" {
		return "navigation"
	}

	if headlineTags[el.Tag] {
		return "headline"
	}
	if subheadTags[el.Tag] {
		return "subhead"
	}

	if (el.Tag == "button" || el.Tag == "a") &&
		(strings.Contains(classStr, "cta") || strings.Contains(classStr, "button")) {
		return "cta"
	}

	if el.Type == TypeImage {
		if posRatio < cfg.HeroTopFraction {
			return "hero-image"
		}
		return "image"
	}

	return "content-block"
}

// normalizeRole maps a raw role onto the closed vocabulary. Unmapped
// values pass through verbatim (lowercased); empty becomes "content".
func normalizeRole(role string) string {
	r := strings.ToLower(role)
	switch r {
	case "hero", "hero-split", "hero-section":
		return "hero"
	case "card", "card-item":
		return "card"
	case "card-grid":
		return "card-grid"
	case "content", "content-block", "content-section", "content-area":
		return "content"
	case "nav", "navigation", "navbar", "menu":
		return "navigation"
	case "headline", "heading", "title", "h1", "h2", "h3":
		return "headline"
	case "subhead", "subheading", "subtitle", "h4", "h5", "h6":
		return "subhead"
	case "body", "paragraph", "text", "p":
		return "body-text"
	case "image", "img", "picture", "photo":
		return "image"
	case "hero-image", "hero-img":
		return "hero-image"
	case "cta", "button", "call-to-action", "action":
		return "cta"
	case "footer", "foot":
		return "footer"
	}
	if r == "" {
		return "content"
	}
	return r
}

// inferScreenType labels the page with a coarse archetype from aggregated
// class names, text content, and section roles. Strict priority order:
// auth wins over everything, dashboard only beats the default.
func inferScreenType(elements []ElementInfo, sections []Section) string {
	var classes, texts []string
	for _, e := range elements {
		classes = append(classes, strings.Join(e.Classes, " "))
		texts = append(texts, e.Text)
	}
	classStr := strings.ToLower(strings.Join(classes, " "))
	textStr := strings.ToLower(strings.Join(texts, " "))

	roles := make([]string, len(sections))
	for i, s := range sections {
		roles[i] = s.Role
	}

	if containsAny(textStr, authTextKeywords) || containsAny(classStr, authClassKeywords) {
		return "auth"
	}

	if strings.Contains(classStr, "service") || anyRoleContains(roles, "service") {
		return "services"
	}
	if strings.Contains(classStr, "pricing") || anyRoleContains(roles, "pricing") {
		return "pricing"
	}
	if strings.Contains(classStr, "portfolio") || anyRoleContains(roles, "portfolio") {
		return "portfolio"
	}
	if strings.Contains(classStr, "blog") || strings.Contains(classStr, "article") {
		return "blog"
	}
	if strings.Contains(classStr, "landing") || anyRoleContains(roles, "hero") {
		return "landing"
	}

	if containsAny(textStr, dashboardKeywords) || containsAny(classStr, dashboardKeywords) {
		return "dashboard"
	}

	return "page"
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func anyRoleContains(roles []string, substr string) bool {
	for _, r := range roles {
		if strings.Contains(r, substr) {
			return true
		}
	}
	return false
}
