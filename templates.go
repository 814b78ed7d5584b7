package formpdf

import (
	"io/fs"

	"github.com/goliatone/go-formpdf/pkg/renderers/page"
)

// EmbeddedTemplates exposes the built-in screen templates so callers can
// copy them as a starting point for a templates directory override.
func EmbeddedTemplates() fs.FS {
	return page.TemplatesFS()
}

// EmbeddedAssets exposes the screen stylesheet.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formpdf.EmbeddedAssets()),
//	  ),
//	)
func EmbeddedAssets() fs.FS {
	return page.AssetsFS()
}
