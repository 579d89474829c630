// Package migrations embeds the goose migrations of the local state file.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
