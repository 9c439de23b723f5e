// Package migrations embeds the goose SQL migrations so the binaries can
// migrate the database without shipping loose files.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
