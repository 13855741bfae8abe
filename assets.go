package forminterp

import (
	"io/fs"

	htmlrenderer "github.com/goliatone/go-forminterp/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in html renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return htmlrenderer.TemplatesFS()
}

// AssetsFS exposes the default stylesheet so Go applications can serve it.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(forminterp.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return htmlrenderer.AssetsFS()
}
