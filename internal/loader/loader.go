package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/goliatone/go-scriptlink/pkg/document"
)

// Loader implements document.Loader by delegating to file, fs.FS or
// standard input strategies. Construction helpers live in the top-level
// scriptlink package.
type Loader struct {
	fs    fs.FS
	stdin io.Reader
}

var _ document.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options document.LoaderOptions) document.Loader {
	stdin := options.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	return &Loader{fs: options.FileSystem, stdin: stdin}
}

// Load reads the source and wraps the bytes in a Document.
func (l *Loader) Load(ctx context.Context, src document.Source) (document.Document, error) {
	if src == nil {
		return document.Document{}, errors.New("document loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return document.Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case document.SourceKindFile:
		data, err = loadFile(src.Location())
	case document.SourceKindFS:
		data, err = loadFromFS(l.fs, src.Location())
	case document.SourceKindStdin:
		data, err = io.ReadAll(l.stdin)
	default:
		err = fmt.Errorf("document loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return document.Document{}, fmt.Errorf("document loader: read %s: %w", src.Location(), err)
	}

	return document.NewDocument(src, data)
}

func loadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("file path is required")
	}
	return os.ReadFile(path)
}

func loadFromFS(filesystem fs.FS, name string) ([]byte, error) {
	if filesystem == nil {
		return nil, errors.New("filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("fs path is required")
	}
	return fs.ReadFile(filesystem, name)
}
