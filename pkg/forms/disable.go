package forms

import "github.com/goliatone/go-scriptlink/pkg/model"

// DisableAllFields disables every field of every row in every form and marks
// each of those rows for EDIT. Fields are updated in place through the
// container, which is returned for chaining. A nil container or one without
// forms is returned untouched. Applying it twice yields the same document.
func DisableAllFields[O model.FormsContainer](option O) O {
	if any(option) == nil {
		return option
	}
	forms := option.FormList()
	for i := range forms {
		if forms[i].CurrentRow != nil {
			disableRow(forms[i].CurrentRow)
		}
		for j := range forms[i].OtherRows {
			disableRow(&forms[i].OtherRows[j])
		}
	}
	return option
}

func disableRow(row *model.Row) {
	for i := range row.Fields {
		row.Fields[i].SetAsDisabled()
	}
	row.RowAction = model.RowActionEdit
}
