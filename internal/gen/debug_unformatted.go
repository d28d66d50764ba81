package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// unformattedSuffix replaces ".go" in the name of the sidecar holding Go
// source that failed to format.
const unformattedSuffix = ".unformatted.go"

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output so the broken source can be inspected.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	// Keep it a .go file so editors can syntax highlight, but avoid colliding with
	// real output.
	debugName := strings.TrimSuffix(filename, ".go") + unformattedSuffix
	p := filepath.Join(outDir, debugName)

	return os.WriteFile(p, content, filePerm)
}
