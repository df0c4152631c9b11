package forms

import "github.com/goliatone/go-scriptlink/pkg/model"

// SetFieldValue writes value into fieldNumber of the row identified by rowID,
// resolved the same way RowFieldValue resolves it, and marks the field
// modified. The returned form carries a fresh copy of the touched row while
// every other row keeps its storage. The input form is not modified. When no
// row or field matches, the form is returned unchanged.
func SetFieldValue(form model.Form, rowID, fieldNumber, value string) model.Form {
	return updateRowField(form, rowID, fieldNumber, func(field *model.Field) {
		field.SetFieldValue(value)
	})
}

// SetEnabledFields enables the listed fields of the current row.
func SetEnabledFields(form model.Form, fieldNumbers ...string) model.Form {
	return updateCurrentFields(form, fieldNumbers, (*model.Field).SetAsEnabled)
}

// SetDisabledFields disables the listed fields of the current row, which also
// clears their Required flag.
func SetDisabledFields(form model.Form, fieldNumbers ...string) model.Form {
	return updateCurrentFields(form, fieldNumbers, (*model.Field).SetAsDisabled)
}

// SetRequiredFields enables the listed fields and marks them required.
func SetRequiredFields(form model.Form, fieldNumbers ...string) model.Form {
	return updateCurrentFields(form, fieldNumbers, (*model.Field).SetAsRequired)
}

// SetOptionalFields keeps the listed fields enabled and drops Required.
func SetOptionalFields(form model.Form, fieldNumbers ...string) model.Form {
	return updateCurrentFields(form, fieldNumbers, (*model.Field).SetAsOptional)
}

// SetLockedFields locks the listed fields of the current row.
func SetLockedFields(form model.Form, fieldNumbers ...string) model.Form {
	return updateCurrentFields(form, fieldNumbers, (*model.Field).SetAsLocked)
}

// SetUnlockedFields unlocks the listed fields of the current row.
func SetUnlockedFields(form model.Form, fieldNumbers ...string) model.Form {
	return updateCurrentFields(form, fieldNumbers, (*model.Field).SetAsUnlocked)
}

func updateRowField(form model.Form, rowID, fieldNumber string, apply func(*model.Field)) model.Form {
	if form.CurrentRow != nil && form.CurrentRow.RowID == rowID {
		idx := fieldIndex(form.CurrentRow.Fields, fieldNumber)
		if idx < 0 {
			return form
		}
		row := withFields(*form.CurrentRow, []int{idx}, apply)
		form.CurrentRow = &row
		return form
	}

	rowIdx := otherRowIndex(form, rowID)
	if rowIdx < 0 {
		return form
	}
	idx := fieldIndex(form.OtherRows[rowIdx].Fields, fieldNumber)
	if idx < 0 {
		return form
	}

	rows := append([]model.Row(nil), form.OtherRows...)
	rows[rowIdx] = withFields(rows[rowIdx], []int{idx}, apply)
	form.OtherRows = rows
	return form
}

func updateCurrentFields(form model.Form, fieldNumbers []string, apply func(*model.Field)) model.Form {
	if form.CurrentRow == nil || len(fieldNumbers) == 0 {
		return form
	}

	var targets []int
	for _, number := range fieldNumbers {
		if idx := fieldIndex(form.CurrentRow.Fields, number); idx >= 0 {
			targets = append(targets, idx)
		}
	}
	if len(targets) == 0 {
		return form
	}

	row := withFields(*form.CurrentRow, targets, apply)
	form.CurrentRow = &row
	return form
}

// withFields copies the row's field slice before applying so the caller's
// storage stays untouched.
func withFields(row model.Row, indexes []int, apply func(*model.Field)) model.Row {
	fields := append([]model.Field(nil), row.Fields...)
	for _, idx := range indexes {
		apply(&fields[idx])
	}
	row.Fields = fields
	return row
}
