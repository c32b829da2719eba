// Package schemas хранит JSON-схемы публикуемых событий.
package schemas

import "embed"

//go:embed events
var SchemasFS embed.FS
