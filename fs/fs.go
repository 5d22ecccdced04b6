// Package appfs ships the application's static assets (SQL migrations,
// email templates) inside the binary.
package appfs

import "embed"

// Directory walks skip _-prefixed files; the base layouts must be named.
//go:embed migrations templates templates/email/_base.txt templates/email/_base.gohtml
var FS embed.FS
