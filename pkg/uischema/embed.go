package uischema

import (
	"embed"
	"io/fs"
)

//go:embed ui/schema/*
var embeddedSchema embed.FS

// EmbeddedFS returns the bundled overlays. Callers may pass this filesystem
// to LoadFS to use the default copy.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedSchema, "ui/schema")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// LoadEmbedded loads the bundled overlays.
func LoadEmbedded() (*Store, error) {
	return LoadFS(EmbeddedFS())
}
