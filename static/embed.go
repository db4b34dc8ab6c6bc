// Package staticfiles embeds the board client (css/board.css,
// js/board.js) so the server binary is self-contained. serverapp swaps
// in the on-disk copies when TASKBOARD_DEV_STATIC is set.
package staticfiles

import (
	"embed"
	"io/fs"
)

//go:embed css/* js/*
var boardAssets embed.FS

func EmbeddedFS() fs.FS {
	return boardAssets
}
