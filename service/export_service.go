package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"catalog-studio/models"
)

// A4 in inches and in CSS pixels at 96 DPI
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
	a4WidthPx      = 794
	a4HeightPx     = 1123
)

const defaultExportTimeout = 60 * time.Second

// Exporter converts a rendered document into a binary artifact
type Exporter interface {
	PDF(ctx context.Context, doc *models.Document) ([]byte, error)
	PNG(ctx context.Context, doc *models.Document) (map[int][]byte, error)
}

// waitForAssetsJS resolves once fonts and every image have loaded or failed
const waitForAssetsJS = `
	(function() {
		return Promise.all([
			document.fonts.ready,
			Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
				return new Promise((resolve) => {
					if (img.complete && img.naturalWidth > 0) {
						resolve();
						return;
					}
					const timeout = setTimeout(() => resolve(), 5000);
					img.onload = () => { clearTimeout(timeout); resolve(); };
					img.onerror = () => { clearTimeout(timeout); resolve(); };
				});
			}))
		]).then(() => true);
	})();
`

// ChromeExporter prints documents with a headless Chrome
type ChromeExporter struct {
	log        *zap.Logger
	chromePath string
	timeout    time.Duration
}

// NewChromeExporter creates a ChromeExporter. An empty chromePath triggers
// detection of a local Chrome or Chromium install.
func NewChromeExporter(log *zap.Logger, chromePath string, timeout time.Duration) *ChromeExporter {
	if timeout <= 0 {
		timeout = defaultExportTimeout
	}
	return &ChromeExporter{
		log:        log,
		chromePath: detectChromePath(chromePath),
		timeout:    timeout,
	}
}

var _ Exporter = (*ChromeExporter)(nil)

// detectChromePath returns configured if it exists, then CHROME_PATH, then
// common installation paths. Empty means chromedp looks it up itself.
func detectChromePath(configured string) string {
	candidates := []string{configured, os.Getenv("CHROME_PATH")}
	candidates = append(candidates,
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	)

	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// browser starts a headless Chrome bound to ctx. The returned cancel func
// releases the tab, the browser and the timeout.
func (e *ChromeExporter) browser(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, e.timeout)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("enable-print-preview", true),
	)
	if e.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	return tabCtx, func() {
		tabCancel()
		allocCancel()
		cancelTimeout()
	}
}

// load replaces the blank page content with the document HTML and waits for assets
func load(html string, width, height int64) chromedp.Tasks {
	return chromedp.Tasks{
		chromedp.EmulateViewport(width, height),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return errors.Wrap(err, "get frame tree")
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(waitForAssetsJS, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
	}
}

// PDF prints the whole document on A4 with zero margins, the page padding lives in CSS
func (e *ChromeExporter) PDF(ctx context.Context, doc *models.Document) ([]byte, error) {
	ctx, cancel := e.browser(ctx)
	defer cancel()

	start := time.Now()
	var pdf []byte
	err := chromedp.Run(ctx,
		load(doc.HTML, a4WidthPx, a4HeightPx*int64(max(doc.PageCount, 1))),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "print pdf")
	}

	e.log.Info("PDF exported",
		zap.String("title", doc.Title),
		zap.Int("pages", doc.PageCount),
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)),
	)
	return pdf, nil
}

// PNG captures every catalog page as its own screenshot, keyed by page number
func (e *ChromeExporter) PNG(ctx context.Context, doc *models.Document) (map[int][]byte, error) {
	if doc.PageCount == 0 {
		return nil, errors.New("document has no pages")
	}

	ctx, cancel := e.browser(ctx)
	defer cancel()

	if err := chromedp.Run(ctx, load(doc.HTML, a4WidthPx, a4HeightPx)); err != nil {
		return nil, errors.Wrap(err, "load document")
	}

	pngs := make(map[int][]byte, doc.PageCount)
	for n := 1; n <= doc.PageCount; n++ {
		var buf []byte
		sel := fmt.Sprintf("#page-%d", n)
		if err := chromedp.Run(ctx,
			chromedp.ScrollIntoView(sel, chromedp.ByQuery),
			chromedp.Screenshot(sel, &buf, chromedp.NodeVisible, chromedp.ByQuery),
		); err != nil {
			return nil, errors.Wrapf(err, "capture page %d", n)
		}
		if len(buf) == 0 {
			return nil, errors.Errorf("capture page %d: empty screenshot", n)
		}
		pngs[n] = buf
	}

	e.log.Info("PNG pages exported",
		zap.String("title", doc.Title),
		zap.Int("pages", len(pngs)),
	)
	return pngs, nil
}
