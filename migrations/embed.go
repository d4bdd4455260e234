// Package migrations embeds the SQL migration files so the compiled
// binary can create its own schema on first start.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
