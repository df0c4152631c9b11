package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-scriptlink/pkg/model"
)

// Format is a wire encoding for Option documents.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml" in any case.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("document: unknown format %q", raw)
	}
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// DetectFormat treats payloads starting with '{' as JSON and anything else
// as YAML.
func DetectFormat(raw []byte) Format {
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return FormatJSON
	}
	return FormatYAML
}

// DecodeOption decodes doc as a revised Option.
func DecodeOption(doc Document) (*model.Option, error) {
	var out model.Option
	if err := decode(doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DecodeLegacyOption decodes doc as a legacy Option. A SessionToken in the
// payload is ignored.
func DecodeLegacyOption(doc Document) (*model.LegacyOption, error) {
	var out model.LegacyOption
	if err := decode(doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Decode returns either generation depending on legacy.
func Decode(doc Document, legacy bool) (model.FormsContainer, error) {
	if legacy {
		return DecodeLegacyOption(doc)
	}
	return DecodeOption(doc)
}

func decode(doc Document, target any) error {
	if len(doc.raw) == 0 {
		return ErrEmptyDocument
	}
	var err error
	switch doc.format {
	case FormatYAML:
		err = yaml.Unmarshal(doc.raw, target)
	default:
		err = json.Unmarshal(doc.raw, target)
	}
	if err != nil {
		return fmt.Errorf("document: decode %s %q: %w", doc.format, doc.Location(), err)
	}
	return nil
}

// Encode serialises option in the requested format. JSON output is indented
// and newline terminated.
func Encode(option model.FormsContainer, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		out, err := yaml.Marshal(option)
		if err != nil {
			return nil, fmt.Errorf("document: encode yaml: %w", err)
		}
		return out, nil
	case FormatJSON, "":
		out, err := json.MarshalIndent(option, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("document: encode json: %w", err)
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("document: unknown format %q", format)
	}
}
