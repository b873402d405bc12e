// AngelaMos | 2026
// embed.go

// Package migrations embeds the ordered SQL schema files applied by
// core.Database.Migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
