package scriptlink

import (
	"io/fs"

	"github.com/goliatone/go-scriptlink/pkg/renderers/page"
)

// EmbeddedTemplates exposes the built-in page renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return page.TemplatesFS()
}

// AssetsFS exposes the default stylesheet used by the page renderer.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(scriptlink.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return page.AssetsFS()
}
