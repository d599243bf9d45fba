// Package migrations embeds the SQL migration files for the sqlite driver so
// they compile into the binary and can be applied via golang-migrate's iofs
// source.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
