package document

import (
	"errors"
)

// ErrEmptyDocument is returned when a source yields no bytes.
var ErrEmptyDocument = errors.New("document: raw document is empty")

// Document wraps a raw Option payload, its origin and its detected format.
type Document struct {
	source Source
	raw    []byte
	format Format
}

// NewDocument constructs a Document, detecting the format from the source
// location first and from the payload second.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("document: source is required")
	}
	if len(raw) == 0 {
		return Document{}, ErrEmptyDocument
	}

	format, ok := FormatFromPath(src.Location())
	if !ok {
		format = DetectFormat(raw)
	}
	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone, format: format}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Format reports how the payload is encoded.
func (d Document) Format() Format {
	return d.format
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
