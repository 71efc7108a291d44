package i18n

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Source produces a fresh dictionary on every call.
type Source interface {
	Load(ctx context.Context) (Dictionary, error)
}

// SourceFunc adapts a function into a Source.
type SourceFunc func(ctx context.Context) (Dictionary, error)

func (f SourceFunc) Load(ctx context.Context) (Dictionary, error) {
	return f(ctx)
}

// FileSource reads a dictionary file. The format follows the extension:
// .yaml and .yml decode as YAML, anything else as JSON.
type FileSource struct {
	path string
	fsys fs.FS
}

// NewFileSource reads path from the local filesystem.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// NewFSSource reads name from fsys.
func NewFSSource(fsys fs.FS, name string) *FileSource {
	return &FileSource{path: name, fsys: fsys}
}

// Path returns the configured file path.
func (s *FileSource) Path() string {
	return s.path
}

func (s *FileSource) Load(ctx context.Context) (Dictionary, error) {
	if s == nil || strings.TrimSpace(s.path) == "" {
		return nil, &DictionaryError{Source: "<unset>", Cause: fs.ErrInvalid}
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var (
		data []byte
		err  error
	)
	if s.fsys != nil {
		data, err = fs.ReadFile(s.fsys, s.path)
	} else {
		data, err = os.ReadFile(s.path)
	}
	if err != nil {
		return nil, &DictionaryError{Source: s.path, Cause: err}
	}

	dict, err := Decode(data, FormatForPath(s.path))
	if err != nil {
		return nil, &DictionaryError{Source: s.path, Cause: err}
	}
	return dict, nil
}

// FormatForPath picks the decoding format from a file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// StaticSource always returns the same dictionary.
type StaticSource struct {
	dict Dictionary
}

// NewStaticSource wraps an in-memory dictionary.
func NewStaticSource(dict Dictionary) StaticSource {
	return StaticSource{dict: dict}
}

func (s StaticSource) Load(context.Context) (Dictionary, error) {
	return s.dict, nil
}
