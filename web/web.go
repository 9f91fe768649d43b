// Package web embeds the HTML templates and static assets into the binary,
// so the server needs nothing on disk besides its SQLite file.
package web

import "embed"

// Templates holds layout/, partials/ and pages/ under templates/.
//
//go:embed templates
var Templates embed.FS

// Static holds css/ and icons/ under static/, served at /static/.
//
//go:embed static
var Static embed.FS
