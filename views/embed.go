// Package views embeds the HTML templates so the binary and tests render without a working directory.
package views

import "embed"

//go:embed *.html layouts/*.html partials/*.html
var FS embed.FS
