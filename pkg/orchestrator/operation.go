package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/goliatone/go-scriptlink/pkg/forms"
	"github.com/goliatone/go-scriptlink/pkg/model"
)

// ErrFormNotFound is returned when an operation names a form the option does
// not hold.
var ErrFormNotFound = errors.New("orchestrator: form not found")

// OperationKind names a mutation applied to an Option.
type OperationKind string

const (
	OpSetValue   OperationKind = "set-value"
	OpDisableAll OperationKind = "disable-all"
	OpEnable     OperationKind = "enable"
	OpDisable    OperationKind = "disable"
	OpRequire    OperationKind = "require"
	OpOptional   OperationKind = "optional"
	OpLock       OperationKind = "lock"
	OpUnlock     OperationKind = "unlock"
)

// OperationKinds lists every supported kind in a stable order.
func OperationKinds() []OperationKind {
	return []OperationKind{OpSetValue, OpDisableAll, OpEnable, OpDisable, OpRequire, OpOptional, OpLock, OpUnlock}
}

// Operation is one mutation. FormID selects the form; empty targets every
// form. RowID only applies to set-value and defaults to the current row.
type Operation struct {
	Kind   OperationKind `json:"kind" yaml:"kind"`
	FormID string        `json:"form,omitempty" yaml:"form,omitempty"`
	RowID  string        `json:"row,omitempty" yaml:"row,omitempty"`
	Fields []string      `json:"fields,omitempty" yaml:"fields,omitempty"`
	Value  string        `json:"value,omitempty" yaml:"value,omitempty"`
}

// Validate reports malformed operations before anything is applied.
func (op Operation) Validate() error {
	switch op.Kind {
	case OpDisableAll:
		return nil
	case OpSetValue, OpEnable, OpDisable, OpRequire, OpOptional, OpLock, OpUnlock:
		if len(op.Fields) == 0 {
			return fmt.Errorf("orchestrator: %s operation needs at least one field", op.Kind)
		}
		return nil
	case "":
		return errors.New("orchestrator: operation kind is required")
	default:
		return fmt.Errorf("orchestrator: unknown operation kind %q", op.Kind)
	}
}

func (op Operation) String() string {
	parts := []string{string(op.Kind)}
	if op.FormID != "" {
		parts = append(parts, "form="+op.FormID)
	}
	if op.RowID != "" {
		parts = append(parts, "row="+op.RowID)
	}
	if len(op.Fields) > 0 {
		parts = append(parts, "fields="+strings.Join(op.Fields, ","))
	}
	return strings.Join(parts, " ")
}

// Apply runs ops against option in order. Forms are replaced in the slice
// returned by FormList, so the option itself sees the changes. Unknown
// forms are collected and reported together once every operation ran;
// malformed operations stop processing immediately.
func Apply(option model.FormsContainer, ops ...Operation) error {
	for _, op := range ops {
		if err := op.Validate(); err != nil {
			return err
		}
	}
	if option == nil {
		return nil
	}

	var errs error
	for _, op := range ops {
		if op.Kind == OpDisableAll && op.FormID == "" {
			forms.DisableAllFields(option)
			continue
		}
		errs = multierr.Append(errs, applyToForms(option.FormList(), op))
	}
	return errs
}

func applyToForms(list []model.Form, op Operation) error {
	if op.FormID == "" {
		for i := range list {
			list[i] = applyToForm(list[i], op)
		}
		return nil
	}
	found := false
	for i := range list {
		if list[i].FormID != op.FormID {
			continue
		}
		list[i] = applyToForm(list[i], op)
		found = true
	}
	if !found {
		return fmt.Errorf("%w: %q (%s)", ErrFormNotFound, op.FormID, op.Kind)
	}
	return nil
}

func applyToForm(form model.Form, op Operation) model.Form {
	switch op.Kind {
	case OpSetValue:
		rowID := op.RowID
		if rowID == "" {
			rowID = forms.CurrentRowID(form)
		}
		for _, number := range op.Fields {
			form = forms.SetFieldValue(form, rowID, number, op.Value)
		}
		return form
	case OpDisableAll:
		single := &model.LegacyOption{Forms: []model.Form{form}}
		return forms.DisableAllFields(single).Forms[0]
	case OpEnable:
		return forms.SetEnabledFields(form, op.Fields...)
	case OpDisable:
		return forms.SetDisabledFields(form, op.Fields...)
	case OpRequire:
		return forms.SetRequiredFields(form, op.Fields...)
	case OpOptional:
		return forms.SetOptionalFields(form, op.Fields...)
	case OpLock:
		return forms.SetLockedFields(form, op.Fields...)
	case OpUnlock:
		return forms.SetUnlockedFields(form, op.Fields...)
	default:
		return form
	}
}
