package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-scriptlink/pkg/model"
)

// Transformer mutates an Option after the request operations ran and before
// rendering. Implementations may change any field of any form.
type Transformer interface {
	Transform(ctx context.Context, option model.FormsContainer) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, option model.FormsContainer) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, option model.FormsContainer) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, option)
}

// PresetTransformer applies a declarative list of operations loaded from a
// YAML or JSON document:
//
//	operations:
//	  - kind: require
//	    form: "1"
//	    fields: ["123.45"]
//	  - kind: set-value
//	    form: "1"
//	    fields: ["123.46"]
//	    value: "N/A"
type PresetTransformer struct {
	operations []Operation
}

type presetDocument struct {
	Operations []Operation `json:"operations" yaml:"operations"`
}

// NewPresetTransformer parses a preset document. YAML is a superset of JSON
// so both encodings are accepted.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	for i, op := range document.Operations {
		if err := op.Validate(); err != nil {
			return nil, fmt.Errorf("preset transformer: operation %d: %w", i, err)
		}
	}
	return &PresetTransformer{operations: document.Operations}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Operations returns a copy of the parsed operations.
func (t *PresetTransformer) Operations() []Operation {
	return append([]Operation(nil), t.operations...)
}

// Transform applies the preset operations in order.
func (t *PresetTransformer) Transform(ctx context.Context, option model.FormsContainer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := Apply(option, t.operations...); err != nil {
		return fmt.Errorf("preset transformer: %w", err)
	}
	return nil
}
