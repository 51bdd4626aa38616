// Package migrations embeds the SQL migrations of the client-side storage
// database. They are applied by storage.Migrate through goose.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
