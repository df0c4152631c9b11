package forms

import (
	"strconv"

	"github.com/goliatone/go-scriptlink/pkg/model"
)

// CurrentRowID returns the id of the current row, or "" when the form has none.
func CurrentRowID(form model.Form) string {
	if form.CurrentRow == nil {
		return ""
	}
	return form.CurrentRow.RowID
}

// ParentRowID returns the parent id of the current row, or "" when the form
// has none.
func ParentRowID(form model.Form) string {
	if form.CurrentRow == nil {
		return ""
	}
	return form.CurrentRow.ParentRowID
}

// IsFieldPresent reports whether the current row holds fieldNumber.
func IsFieldPresent(form model.Form, fieldNumber string) bool {
	_, ok := currentField(form, fieldNumber)
	return ok
}

// IsFieldEnabled reports the Enabled flag of fieldNumber in the current row.
// Missing fields report false.
func IsFieldEnabled(form model.Form, fieldNumber string) bool {
	field, ok := currentField(form, fieldNumber)
	return ok && field.IsEnabled()
}

// IsFieldLocked reports the Lock flag of fieldNumber in the current row.
func IsFieldLocked(form model.Form, fieldNumber string) bool {
	field, ok := currentField(form, fieldNumber)
	return ok && field.IsLocked()
}

// IsFieldRequired reports the Required flag of fieldNumber in the current row.
func IsFieldRequired(form model.Form, fieldNumber string) bool {
	field, ok := currentField(form, fieldNumber)
	return ok && field.IsRequired()
}

// FieldValue returns the value of fieldNumber in the current row, or "".
func FieldValue(form model.Form, fieldNumber string) string {
	field, ok := currentField(form, fieldNumber)
	if !ok {
		return ""
	}
	return field.FieldValue
}

// RowFieldValue returns the value of fieldNumber in the row identified by
// rowID. The current row is checked first, then OtherRows in order.
func RowFieldValue(form model.Form, rowID, fieldNumber string) string {
	row := findRow(form, rowID)
	if row == nil {
		return ""
	}
	idx := fieldIndex(row.Fields, fieldNumber)
	if idx < 0 {
		return ""
	}
	return row.Fields[idx].FieldValue
}

// FieldValues collects fieldNumber from the current row followed by every
// other row that carries it.
func FieldValues(form model.Form, fieldNumber string) []string {
	var values []string
	if form.CurrentRow != nil {
		if idx := fieldIndex(form.CurrentRow.Fields, fieldNumber); idx >= 0 {
			values = append(values, form.CurrentRow.Fields[idx].FieldValue)
		}
	}
	for _, row := range form.OtherRows {
		if idx := fieldIndex(row.Fields, fieldNumber); idx >= 0 {
			values = append(values, row.Fields[idx].FieldValue)
		}
	}
	return values
}

// FieldInt parses the current row value of fieldNumber as an integer. Missing
// fields and non-numeric values yield 0.
func FieldInt(form model.Form, fieldNumber string) int {
	value, err := strconv.Atoi(FieldValue(form, fieldNumber))
	if err != nil {
		return 0
	}
	return value
}

// ModifiedFields lists the fields touched by a setter across the current row
// and other rows, in traversal order.
func ModifiedFields(form model.Form) []model.Field {
	var out []model.Field
	collect := func(row *model.Row) {
		for _, field := range row.Fields {
			if field.IsModified() {
				out = append(out, field)
			}
		}
	}
	if form.CurrentRow != nil {
		collect(form.CurrentRow)
	}
	for i := range form.OtherRows {
		collect(&form.OtherRows[i])
	}
	return out
}

// FindForm returns the index of the first form whose id equals formID.
func FindForm(container model.FormsContainer, formID string) (int, bool) {
	if container == nil {
		return -1, false
	}
	for i, form := range container.FormList() {
		if form.FormID == formID {
			return i, true
		}
	}
	return -1, false
}

// Form returns the first form whose id equals formID.
func Form(container model.FormsContainer, formID string) (model.Form, bool) {
	idx, ok := FindForm(container, formID)
	if !ok {
		return model.Form{}, false
	}
	return container.FormList()[idx], true
}

func currentField(form model.Form, fieldNumber string) (model.Field, bool) {
	if form.CurrentRow == nil {
		return model.Field{}, false
	}
	idx := fieldIndex(form.CurrentRow.Fields, fieldNumber)
	if idx < 0 {
		return model.Field{}, false
	}
	return form.CurrentRow.Fields[idx], true
}

// findRow resolves rowID against the current row first and then OtherRows.
// The returned pointer aliases the form's storage.
func findRow(form model.Form, rowID string) *model.Row {
	if form.CurrentRow != nil && form.CurrentRow.RowID == rowID {
		return form.CurrentRow
	}
	if idx := otherRowIndex(form, rowID); idx >= 0 {
		return &form.OtherRows[idx]
	}
	return nil
}

func otherRowIndex(form model.Form, rowID string) int {
	for i, row := range form.OtherRows {
		if row.RowID == rowID {
			return i
		}
	}
	return -1
}

func fieldIndex(fields []model.Field, fieldNumber string) int {
	for i, field := range fields {
		if field.FieldNumber == fieldNumber {
			return i
		}
	}
	return -1
}
