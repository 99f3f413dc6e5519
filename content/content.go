// Package content embeds the stock Megan's Journey world.
package content

import "embed"

// FS holds the world's Lua files at its root.
//
//go:embed *.lua
var FS embed.FS
