package forms_test

import (
	"testing"

	"github.com/goliatone/go-scriptlink/pkg/forms"
	"github.com/goliatone/go-scriptlink/pkg/model"
)

func TestSetFieldValue_CurrentRow(t *testing.T) {
	original := multiRowForm()
	before := original.Clone()

	updated := forms.SetFieldValue(original, "R1", "1.2", "43")

	if got := forms.RowFieldValue(updated, "R1", "1.2"); got != "43" {
		t.Fatalf("expected updated value, got %q", got)
	}
	if !updated.CurrentRow.Fields[1].IsModified() {
		t.Fatalf("expected written field to be marked modified")
	}
	if updated.CurrentRow.Fields[0].IsModified() {
		t.Fatalf("expected sibling fields to stay unmodified")
	}
	if !original.Equal(before) {
		t.Fatalf("expected input form to be left untouched")
	}

	expected := before.Clone()
	expected.CurrentRow.Fields[1].FieldValue = "43"
	if !updated.Equal(expected) {
		t.Fatalf("expected only the targeted field to change")
	}
	if &updated.OtherRows[0] != &original.OtherRows[0] {
		t.Fatalf("expected untouched other rows to keep their storage")
	}
}

func TestSetFieldValue_OtherRow(t *testing.T) {
	original := multiRowForm()
	before := original.Clone()

	updated := forms.SetFieldValue(original, "R4", "1.1", "changed")

	if got := forms.RowFieldValue(updated, "R4", "1.1"); got != "changed" {
		t.Fatalf("expected updated value, got %q", got)
	}
	if got := forms.RowFieldValue(original, "R4", "1.1"); got != "fourth" {
		t.Fatalf("expected input form to keep its value, got %q", got)
	}
	if updated.CurrentRow != original.CurrentRow {
		t.Fatalf("expected current row to be shared when untouched")
	}
	if &updated.OtherRows[0].Fields[0] != &original.OtherRows[0].Fields[0] {
		t.Fatalf("expected untouched rows to keep their field storage")
	}

	expected := before.Clone()
	expected.OtherRows[2].Fields[0].FieldValue = "changed"
	if !updated.Equal(expected) {
		t.Fatalf("expected only the targeted field to change")
	}
	if len(forms.ModifiedFields(updated)) != 1 {
		t.Fatalf("expected exactly one modified field")
	}
}

func TestSetFieldValue_NoMatch(t *testing.T) {
	original := multiRowForm()

	cases := []struct {
		name   string
		rowID  string
		number string
	}{
		{name: "unknown row", rowID: "R9", number: "1.1"},
		{name: "unknown field in current row", rowID: "R1", number: "9.9"},
		{name: "unknown field in other row", rowID: "R3", number: "1.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			updated := forms.SetFieldValue(original, tc.rowID, tc.number, "v")
			if !updated.Equal(original) {
				t.Fatalf("expected form to be unchanged")
			}
			if updated.CurrentRow != original.CurrentRow {
				t.Fatalf("expected unchanged form to reuse its rows")
			}
			if len(forms.ModifiedFields(updated)) != 0 {
				t.Fatalf("expected nothing to be marked modified")
			}
		})
	}

	empty := forms.SetFieldValue(model.Form{FormID: "1"}, "", "1", "v")
	if empty.CurrentRow != nil || len(empty.OtherRows) != 0 {
		t.Fatalf("expected empty form to stay empty")
	}
}

func TestSetFieldValue_FirstMatchOnDuplicates(t *testing.T) {
	updated := forms.SetFieldValue(multiRowForm(), "R1", "1.1", "first")

	if got := updated.CurrentRow.Fields[0].FieldValue; got != "first" {
		t.Fatalf("expected first duplicate to be written, got %q", got)
	}
	if got := updated.CurrentRow.Fields[2].FieldValue; got != "duplicate" {
		t.Fatalf("expected later duplicate to be untouched, got %q", got)
	}
}

func TestSetFlagFields(t *testing.T) {
	form := multiRowForm()

	required := forms.SetRequiredFields(form, "1.2", "missing")
	if !forms.IsFieldRequired(required, "1.2") || !forms.IsFieldEnabled(required, "1.2") {
		t.Fatalf("expected 1.2 to become required and enabled")
	}
	if forms.IsFieldRequired(form, "1.2") {
		t.Fatalf("expected input form to be untouched")
	}

	disabled := forms.SetDisabledFields(required, "1.2")
	if forms.IsFieldEnabled(disabled, "1.2") || forms.IsFieldRequired(disabled, "1.2") {
		t.Fatalf("expected 1.2 to be disabled and optional")
	}

	enabled := forms.SetEnabledFields(disabled, "1.2")
	if !forms.IsFieldEnabled(enabled, "1.2") {
		t.Fatalf("expected 1.2 to be enabled")
	}

	optional := forms.SetOptionalFields(form, "1.1")
	if forms.IsFieldRequired(optional, "1.1") {
		t.Fatalf("expected 1.1 to be optional")
	}

	unlocked := forms.SetUnlockedFields(form, "1.1")
	if forms.IsFieldLocked(unlocked, "1.1") {
		t.Fatalf("expected 1.1 to be unlocked")
	}
	locked := forms.SetLockedFields(unlocked, "1.2")
	if !forms.IsFieldLocked(locked, "1.2") {
		t.Fatalf("expected 1.2 to be locked")
	}

	untouched := forms.SetLockedFields(form, "missing")
	if untouched.CurrentRow != form.CurrentRow {
		t.Fatalf("expected no-op when nothing matches")
	}
	if got := forms.SetLockedFields(model.Form{}, "1.1"); got.CurrentRow != nil {
		t.Fatalf("expected form without current row to stay empty")
	}
}
