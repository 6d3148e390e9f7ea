// Package migrations carries the SQL schema for postgres deployments.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
