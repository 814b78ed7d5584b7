package chrome

import (
	"time"

	"github.com/goliatone/go-formpdf/pkg/render"
)

// A4 paper size in inches.
const (
	A4WidthInches  = 8.27
	A4HeightInches = 11.69
)

type config struct {
	chromePath  string
	download    bool
	noSandbox   bool
	timeout     time.Duration
	paperWidth  float64
	paperHeight float64
	html        render.Renderer
}

func defaultConfig() config {
	return config{
		timeout:     30 * time.Second,
		paperWidth:  A4WidthInches,
		paperHeight: A4HeightInches,
	}
}

// Option configures an Engine.
type Option func(*config)

// WithChromePath sets the Chrome or Chromium executable. By default
// chromedp searches the standard locations.
func WithChromePath(path string) Option {
	return func(c *config) {
		c.chromePath = path
	}
}

// WithDownload fetches a Chromium build when no path is configured.
func WithDownload(enabled bool) Option {
	return func(c *config) {
		c.download = enabled
	}
}

// WithNoSandbox disables the Chrome sandbox, required when running as root
// inside containers.
func WithNoSandbox(enabled bool) Option {
	return func(c *config) {
		c.noSandbox = enabled
	}
}

// WithTimeout bounds a single conversion. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithPaperSize overrides the page size in inches.
func WithPaperSize(width, height float64) Option {
	return func(c *config) {
		if width > 0 && height > 0 {
			c.paperWidth = width
			c.paperHeight = height
		}
	}
}

// WithHTMLRenderer sets the renderer producing the HTML to print.
func WithHTMLRenderer(r render.Renderer) Option {
	return func(c *config) {
		if r != nil {
			c.html = r
		}
	}
}
