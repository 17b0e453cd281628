package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Page wraps a Rod page prepared for layout analysis: stealth applied,
// viewport set, navigation completed and settled.
type Page struct {
	Page *rod.Page
	URL  string
}

// OpenOptions control page preparation.
type OpenOptions struct {
	// ViewportWidth/ViewportHeight override the default viewport.
	// Defaults: 1920×1000.
	ViewportWidth  int           `json:"viewport_width" yaml:"viewport_width"`
	ViewportHeight int           `json:"viewport_height" yaml:"viewport_height"`

	// NavigateTimeout bounds navigation and load waiting. Default: 30s.
	NavigateTimeout time.Duration `json:"navigate_timeout" yaml:"navigate_timeout"`

	// SettleDelay is a fixed wait after load for late layout shifts and
	// entrance animations. Default: 1s.
	SettleDelay time.Duration `json:"settle_delay" yaml:"settle_delay"`
}

func (o *OpenOptions) defaults() {
	if o.ViewportWidth <= 0 {
		o.ViewportWidth = 1920
	}
	if o.ViewportHeight <= 0 {
		o.ViewportHeight = 1000
	}
	if o.NavigateTimeout <= 0 {
		o.NavigateTimeout = 30 * time.Second
	}
	if o.SettleDelay <= 0 {
		o.SettleDelay = time.Second
	}
}

// OpenPage creates a page, navigates to the URL and waits for it to
// stabilize. The caller must Close the page.
func (m *Manager) OpenPage(ctx context.Context, pageURL string, opts OpenOptions) (*Page, error) {
	opts.defaults()

	b := m.Browser()
	if b == nil {
		return nil, fmt.Errorf("browser: no active browser")
	}

	var page *rod.Page
	var err error
	if *m.cfg.Stealth {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		return nil, fmt.Errorf("browser: create page: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.ViewportWidth,
		Height:            opts.ViewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		m.cfg.Logger.Warn("browser: set viewport failed", "error", err)
	}

	navCtx, cancel := context.WithTimeout(ctx, opts.NavigateTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		page.Close()
		return nil, fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		m.cfg.Logger.Warn("browser: wait load timeout", "url", pageURL, "error", err)
	}

	// Let late layout shifts and entrance animations finish before the
	// geometry snapshot.
	select {
	case <-time.After(opts.SettleDelay):
	case <-ctx.Done():
		page.Close()
		return nil, ctx.Err()
	}

	return &Page{Page: page, URL: pageURL}, nil
}

// Screenshot captures the page as PNG. fullPage extends the capture
// beyond the viewport.
func (p *Page) Screenshot(ctx context.Context, fullPage bool) ([]byte, error) {
	data, err := p.Page.Context(ctx).Screenshot(fullPage, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("browser: screenshot %s: %w", p.URL, err)
	}
	return data, nil
}

// Close closes the underlying tab.
func (p *Page) Close() error {
	if p.Page != nil {
		return p.Page.Close()
	}
	return nil
}
