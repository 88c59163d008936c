// Package web holds the HTML templates of the upload form and the results
// page. They are compiled into the binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var files embed.FS

// Templates returns the template files rooted at the templates directory
func Templates() fs.FS {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return sub
}
