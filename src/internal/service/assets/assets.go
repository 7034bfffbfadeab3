package assets

import (
	"mime"
	"os"
)

// RegisterMimeTypes pins the types browsers are strict about. Go's mime
// package relies on OS files which are missing on minimal systems, and
// stylesheets or modules served with the wrong type are rejected.
func RegisterMimeTypes() {
	mime.AddExtensionType(".css", "text/css")
	mime.AddExtensionType(".js", "application/javascript")
	mime.AddExtensionType(".mjs", "application/javascript")
	mime.AddExtensionType(".html", "text/html")
	mime.AddExtensionType(".svg", "image/svg+xml")
	mime.AddExtensionType(".json", "application/json")
	mime.AddExtensionType(".wasm", "application/wasm")
}

// CheckRoot reports whether dir exists and is a directory.
func CheckRoot(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
