package page

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed content.yaml
var defaultContent []byte

//go:embed static
var staticFS embed.FS

// Static returns the stylesheet and scripts served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The directory is embedded above; Sub only fails on a bad pattern.
		panic(err)
	}
	return sub
}
