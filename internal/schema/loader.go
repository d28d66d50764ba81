package schema

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DocumentFile is the file name of a protocol document inside a version directory.
const DocumentFile = "protocol.json"

// Source locates the protocol document of a protocol version.
type Source interface {
	// Path returns the location of the document for version.
	Path(version string) string
	// Open opens the document for version.
	Open(version string) (io.ReadCloser, error)
}

// DirSource serves documents laid out as <Root>/<version>/protocol.json.
type DirSource struct {
	Root string
}

// Path implements Source.
func (s DirSource) Path(version string) string {
	return filepath.Join(s.Root, version, DocumentFile)
}

// Open implements Source.
func (s DirSource) Open(version string) (io.ReadCloser, error) {
	return os.Open(s.Path(version))
}

// LoadVersion loads and parses the document of version from src.
func LoadVersion(src Source, version string) (*Document, error) {
	rc, err := src.Open(version)
	if err != nil {
		return nil, fmt.Errorf("failed to open protocol document for version %s: %w", version, err)
	}
	defer rc.Close()

	return ParseReader(rc)
}

// LoadFile loads and parses a protocol document from the given path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read protocol document %s: %w", path, err)
	}

	return Parse(data)
}

// ParseReader reads the whole of r and parses it.
func ParseReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read protocol document: %w", err)
	}

	return Parse(data)
}
