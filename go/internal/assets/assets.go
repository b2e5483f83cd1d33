// Package assets embeds the database schema and the default league seed list.
package assets

import _ "embed"

//go:embed schema.sql
var Schema string

//go:embed leagues.yaml
var Leagues []byte
