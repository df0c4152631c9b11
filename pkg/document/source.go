package document

import (
	"path/filepath"
)

// Source identifies where an Option document came from so loaders can read
// files, fs.FS entries or standard input without leaking how.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindStdin SourceKind = "stdin"
)

// StdinLocation is the conventional name for standard input on the command
// line.
const StdinLocation = "-"

type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type stdinSource struct{}

func (stdinSource) Location() string {
	return StdinLocation
}

func (stdinSource) Kind() SourceKind {
	return SourceKindStdin
}

// SourceFromStdin returns a Source reading the loader's standard input.
func SourceFromStdin() Source {
	return stdinSource{}
}

// SourceFromArg maps a command line argument to a Source: "-" or "" means
// standard input, anything else a file path.
func SourceFromArg(arg string) Source {
	if arg == "" || arg == StdinLocation {
		return SourceFromStdin()
	}
	return SourceFromFile(arg)
}
