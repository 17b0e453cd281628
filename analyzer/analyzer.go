// Package analyzer drives a managed browser through the layout engine:
// open the URL, let it settle, infer the layout, optionally capture a
// screenshot. It is the single entry point shared by the CLI, the HTTP
// API and the MCP tools.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/domlens/browser"
	"github.com/hazyhaar/domlens/layout"
)

// Request describes one analysis run.
type Request struct {
	URL            string `json:"url"`
	Name           string `json:"name,omitempty"`
	ComponentID    string `json:"componentId,omitempty"`
	ViewportWidth  int    `json:"viewportWidth,omitempty"`
	ViewportHeight int    `json:"viewportHeight,omitempty"`
	Screenshot     bool   `json:"screenshot,omitempty"`
	FullPage       bool   `json:"fullPage,omitempty"`
}

// Response carries the inferred layout and, when requested, a PNG
// screenshot of the page.
type Response struct {
	Result     *layout.Result `json:"result"`
	Screenshot []byte         `json:"-"`
}

// Analyzer runs layout inference against live pages.
type Analyzer struct {
	mgr    *browser.Manager
	engine *layout.Engine
	logger *slog.Logger
}

// New builds an Analyzer on a started browser manager.
func New(mgr *browser.Manager, cfg layout.Config, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		mgr:    mgr,
		engine: layout.New(cfg),
		logger: logger,
	}
}

// Analyze opens the URL in a fresh page and infers its layout. Page
// navigation failures are returned as errors; once the page is open the
// engine itself always produces a result, degraded at worst.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Response, error) {
	if req.URL == "" {
		return nil, fmt.Errorf("analyzer: url required")
	}

	page, err := a.mgr.OpenPage(ctx, req.URL, browser.OpenOptions{
		ViewportWidth:  req.ViewportWidth,
		ViewportHeight: req.ViewportHeight,
	})
	if err != nil {
		return nil, fmt.Errorf("analyzer: open %s: %w", req.URL, err)
	}
	defer page.Close()

	result := a.engine.Analyze(ctx, browser.NewAccessor(page), layout.Options{
		ComponentID: req.ComponentID,
		Name:        req.Name,
	})

	resp := &Response{Result: result}
	if req.Screenshot {
		shot, err := page.Screenshot(ctx, req.FullPage)
		if err != nil {
			// The layout is still valid without the image.
			a.logger.Warn("screenshot failed", "url", req.URL, "error", err)
		} else {
			resp.Screenshot = shot
		}
	}

	a.logger.Info("analysis complete",
		"url", req.URL,
		"id", result.ID,
		"screenType", result.ScreenType,
		"slots", len(result.Slots),
		"sections", len(result.Sections))

	return resp, nil
}
