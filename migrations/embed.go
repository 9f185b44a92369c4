// Package migrations embeds the SQL migration files so the migrate
// command works from a single binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
