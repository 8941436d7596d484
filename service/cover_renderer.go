package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/yansassi/hecho-adm-sub001/models"
	"github.com/yansassi/hecho-adm-sub001/pdf"
)

//go:embed templates/cover.html
var coverFS embed.FS

var coverTemplate = template.Must(template.ParseFS(coverFS, "templates/cover.html"))

// A4 at 96 dpi
const (
	coverWidthPx  = 794
	coverHeightPx = 1123
)

// CoverRenderer rasterises the catalog cover with headless Chrome
type CoverRenderer struct {
	chromePath string
	timeout    time.Duration
	log        *zap.SugaredLogger
}

var _ pdf.CoverSource = (*CoverRenderer)(nil)

// NewCoverRenderer creates a cover renderer. chromePath may be empty to auto-detect.
func NewCoverRenderer(chromePath string, timeout time.Duration, log *zap.Logger) *CoverRenderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &CoverRenderer{chromePath: chromePath, timeout: timeout, log: log.Sugar()}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks the configured path first, then common installation paths
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	// Common paths to check
	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// renderCoverHTML executes the cover template
func renderCoverHTML(data pdf.CoverData) (string, error) {
	templateData := struct {
		Title      string
		Date       string
		Categories []string
		LogoURL    string
		SiteLabel  string
	}{
		Title:      data.Title,
		Date:       data.Date.Format("02/01/2006"),
		Categories: data.Categories,
		LogoURL:    data.LogoURL,
		SiteLabel:  data.SiteLabel,
	}

	var buf bytes.Buffer
	if err := coverTemplate.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// RenderCover renders the cover page and returns it as an image
func (c *CoverRenderer) RenderCover(ctx context.Context, data pdf.CoverData) (models.ImagePayload, error) {
	html, err := renderCoverHTML(data)
	if err != nil {
		return models.ImagePayload{}, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(c.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	} else {
		c.log.Warnf("⚠️  Chrome not found, letting chromedp auto-detect")
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var shot []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(coverWidthPx, coverHeightPx, chromedp.EmulateScale(2)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		// Wait for fonts and the logo to load
		chromedp.Evaluate(`
			Promise.all([
				document.fonts.ready,
				Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
					return new Promise((resolve) => {
						if (img.complete) { resolve(); return; }
						const timeout = setTimeout(() => resolve(), 5000);
						img.onload = () => { clearTimeout(timeout); resolve(); };
						img.onerror = () => { clearTimeout(timeout); resolve(); };
					});
				}))
			]).then(() => true);
		`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.CaptureScreenshot(&shot),
	)
	if err != nil {
		return models.ImagePayload{}, fmt.Errorf("failed to render cover: %w", err)
	}

	c.log.Infof("🖼️  Cover rendered: %d bytes", len(shot))
	return NormalizeForPDF(shot)
}
