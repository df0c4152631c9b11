package editor

import (
	"context"
	"errors"
	"fmt"

	validator "github.com/go-playground/validator/v10"

	"github.com/goliatone/go-scriptlink/pkg/forms"
	"github.com/goliatone/go-scriptlink/pkg/model"
)

var (
	// ErrAborted signals the user aborted input (e.g. Ctrl+C).
	ErrAborted = errors.New("editor: aborted")
	// ErrRequiredValue is returned by the input validator when a required
	// field is left empty.
	ErrRequiredValue = errors.New("editor: value is required")
)

var values = validator.New()

// Option configures an Editor.
type Option func(*Editor)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// WithConfirm asks for confirmation before edits are applied.
func WithConfirm(enabled bool) Option {
	return func(e *Editor) {
		e.confirm = enabled
	}
}

// Editor walks the editable fields of a row and writes the answers back
// through forms.SetFieldValue.
type Editor struct {
	driver  PromptDriver
	confirm bool
}

// New constructs an Editor. The survey driver is used unless another one is
// supplied.
func New(options ...Option) *Editor {
	e := &Editor{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.driver == nil {
		e.driver = NewSurveyDriver(nil)
	}
	return e
}

// EditForm lets the user pick a row and then prompts every enabled,
// unlocked field of that row. The returned form carries the answers that
// differ from the stored values; form itself is left untouched.
func (e *Editor) EditForm(ctx context.Context, form model.Form) (model.Form, error) {
	if ctx == nil {
		return form, errors.New("editor: context is required")
	}
	if err := ctx.Err(); err != nil {
		return form, err
	}

	rows := editableRows(form)
	if len(rows) == 0 {
		return form, e.driver.Info(ctx, fmt.Sprintf("Form %s has no rows to edit", form.FormID))
	}

	idx := 0
	if len(rows) > 1 {
		labels := make([]string, len(rows))
		for i, row := range rows {
			labels[i] = rowLabel(row, i == 0 && form.CurrentRow != nil)
		}
		selected, err := e.driver.Select(ctx, SelectConfig{
			Message: fmt.Sprintf("Row of form %s", form.FormID),
			Options: labels,
		})
		if err != nil {
			return form, err
		}
		if selected < 0 || selected >= len(rows) {
			return form, fmt.Errorf("editor: row selection %d out of range", selected)
		}
		idx = selected
	}
	row := rows[idx]

	updated := form
	changes := 0
	seen := make(map[string]struct{}, len(row.Fields))
	for _, field := range row.Fields {
		if _, dup := seen[field.FieldNumber]; dup {
			continue
		}
		seen[field.FieldNumber] = struct{}{}
		if !field.IsEnabled() || field.IsLocked() {
			continue
		}

		value, err := e.driver.Input(ctx, inputFor(field))
		if err != nil {
			return form, err
		}
		if value == field.FieldValue {
			continue
		}
		updated = forms.SetFieldValue(updated, row.RowID, field.FieldNumber, value)
		changes++
	}

	if changes == 0 {
		return form, e.driver.Info(ctx, "No changes")
	}
	if e.confirm {
		ok, err := e.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Apply %d change(s) to form %s?", changes, form.FormID),
			Default: true,
		})
		if err != nil {
			return form, err
		}
		if !ok {
			return form, nil
		}
	}
	return updated, nil
}

// EditOption lets the user pick a form and edits it with EditForm. The
// edited form replaces the original inside option.
func (e *Editor) EditOption(ctx context.Context, option model.FormsContainer) error {
	if option == nil {
		return errors.New("editor: option is nil")
	}
	list := option.FormList()
	if len(list) == 0 {
		return e.driver.Info(ctx, "Option has no forms")
	}

	idx := 0
	if len(list) > 1 {
		labels := make([]string, len(list))
		for i, form := range list {
			labels[i] = "Form " + form.FormID
		}
		selected, err := e.driver.Select(ctx, SelectConfig{Message: "Form", Options: labels})
		if err != nil {
			return err
		}
		if selected < 0 || selected >= len(list) {
			return fmt.Errorf("editor: form selection %d out of range", selected)
		}
		idx = selected
	}

	edited, err := e.EditForm(ctx, list[idx])
	if err != nil {
		return err
	}
	list[idx] = edited
	return nil
}

// editableRows lists the current row first, followed by the other rows.
// Other rows sharing the current row's id are left out because
// SetFieldValue would resolve them to the current row.
func editableRows(form model.Form) []model.Row {
	var rows []model.Row
	if form.CurrentRow != nil {
		rows = append(rows, *form.CurrentRow)
	}
	for _, row := range form.OtherRows {
		if form.CurrentRow != nil && row.RowID == form.CurrentRow.RowID {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func rowLabel(row model.Row, current bool) string {
	label := row.RowID
	if label == "" {
		label = "(no id)"
	}
	if current {
		label += " (current)"
	}
	return label
}

func inputFor(field model.Field) InputConfig {
	cfg := InputConfig{
		Message: field.FieldNumber,
		Default: field.FieldValue,
	}
	if field.IsRequired() {
		cfg.Message += " *"
		cfg.Help = "Required"
		cfg.Validator = func(value string) error {
			if err := values.Var(value, "required"); err != nil {
				return ErrRequiredValue
			}
			return nil
		}
	}
	return cfg
}
