package migrations

import "embed"

// Files contiene las migraciones SQL embebidas.
//
//go:embed *.sql
var Files embed.FS
