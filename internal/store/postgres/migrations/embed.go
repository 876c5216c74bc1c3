// Package migrations embeds and applies the SQL that creates the
// tables the postgres store assumes, in lexical filename order.
package migrations

import "embed"

// FS embeds every migration file in this directory.
//
//go:embed *.sql
var FS embed.FS
