package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"
)

// formatOptions only format and group imports; emitters declare every
// import they use.
var formatOptions = &imports.Options{Comments: true, TabIndent: true, TabWidth: 8, FormatOnly: true}

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Writer writes generated files below OutputDir.
type Writer struct {
	OutputDir string
}

// NewWriter creates a Writer for outputDir.
func NewWriter(outputDir string) *Writer {
	return &Writer{OutputDir: outputDir}
}

// WriteFiles formats and writes all files. Go files are run through
// goimports first; if one fails to format, its raw content is written to an
// .unformatted.go sidecar and nothing else is written. Every file is staged
// in a temporary file next to its target and renamed into place once all of
// them are staged.
func (w *Writer) WriteFiles(files []GeneratedFile) error {
	rendered := make([]GeneratedFile, 0, len(files))

	for _, file := range files {
		content, err := w.format(file)
		if err != nil {
			return err
		}

		rendered = append(rendered, GeneratedFile{Filename: file.Filename, Content: content})
	}

	staged := make([]stagedFile, 0, len(rendered))

	for _, file := range rendered {
		s, err := w.stage(file)
		if err != nil {
			discard(staged)
			return err
		}

		staged = append(staged, s)
	}

	for i, s := range staged {
		if err := os.Rename(s.tmp, s.target); err != nil {
			discard(staged[i:])
			return fmt.Errorf("writing file %s: %w", s.target, err)
		}
	}

	return nil
}

func (w *Writer) format(file GeneratedFile) ([]byte, error) {
	if filepath.Ext(file.Filename) != ".go" {
		return file.Content, nil
	}

	target := filepath.Join(w.OutputDir, file.Filename)

	formatted, err := imports.Process(target, file.Content, formatOptions)
	if err != nil {
		dir, base := filepath.Split(target)
		if derr := writeDebugUnformatted(dir, base, file.Content); derr != nil {
			err = errors.Join(err, derr)
		}

		return nil, fmt.Errorf("formatting %s: %w", file.Filename, err)
	}

	return formatted, nil
}

type stagedFile struct {
	tmp    string
	target string
}

func (w *Writer) stage(file GeneratedFile) (stagedFile, error) {
	target := filepath.Join(w.OutputDir, file.Filename)
	dir := filepath.Dir(target)

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return stagedFile{}, fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return stagedFile{}, fmt.Errorf("staging file %s: %w", file.Filename, err)
	}

	_, werr := tmp.Write(file.Content)
	cerr := tmp.Close()

	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmp.Name())
		return stagedFile{}, fmt.Errorf("staging file %s: %w", file.Filename, err)
	}

	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		_ = os.Remove(tmp.Name())
		return stagedFile{}, fmt.Errorf("staging file %s: %w", file.Filename, err)
	}

	return stagedFile{tmp: tmp.Name(), target: target}, nil
}

func discard(staged []stagedFile) {
	for _, s := range staged {
		_ = os.Remove(s.tmp)
	}
}

// RemoveStale deletes temporary files an interrupted run left below
// OutputDir. A missing OutputDir is not an error.
func (w *Writer) RemoveStale() error {
	err := filepath.WalkDir(w.OutputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && isStaging(d.Name()) {
			return os.Remove(p)
		}

		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("removing stale files: %w", err)
	}

	return nil
}

// isStaging reports whether name is a temporary file left by the writer.
func isStaging(name string) bool {
	return strings.HasPrefix(name, ".") && strings.Contains(name, ".tmp-")
}
