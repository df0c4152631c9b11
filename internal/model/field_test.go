package model_test

import (
	"testing"

	"github.com/goliatone/go-scriptlink/internal/model"
)

func TestField_FlagAccessors(t *testing.T) {
	field := model.Field{FieldNumber: "12345.6", Enabled: "1", Required: "0", Lock: "1"}

	if !field.IsEnabled() {
		t.Fatalf("expected field to be enabled")
	}
	if field.IsRequired() {
		t.Fatalf("expected field to be optional")
	}
	if !field.IsLocked() {
		t.Fatalf("expected field to be locked")
	}
	if field.IsModified() {
		t.Fatalf("expected freshly built field to be unmodified")
	}

	odd := model.Field{Enabled: "true", Lock: "yes"}
	if odd.IsEnabled() || odd.IsLocked() {
		t.Fatalf("expected only %q to count as set", model.FlagOn)
	}
}

func TestField_Setters(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*model.Field)
		want  model.Field
	}{
		{
			name:  "disabled clears required",
			apply: (*model.Field).SetAsDisabled,
			want:  model.Field{FieldNumber: "1", Enabled: "0", Required: "0", Lock: "0"},
		},
		{
			name:  "enabled",
			apply: (*model.Field).SetAsEnabled,
			want:  model.Field{FieldNumber: "1", Enabled: "1", Required: "1", Lock: "0"},
		},
		{
			name:  "locked",
			apply: (*model.Field).SetAsLocked,
			want:  model.Field{FieldNumber: "1", Enabled: "1", Required: "1", Lock: "1"},
		},
		{
			name:  "unlocked",
			apply: (*model.Field).SetAsUnlocked,
			want:  model.Field{FieldNumber: "1", Enabled: "1", Required: "1", Lock: "0"},
		},
		{
			name:  "optional",
			apply: (*model.Field).SetAsOptional,
			want:  model.Field{FieldNumber: "1", Enabled: "1", Required: "0", Lock: "0"},
		},
		{
			name:  "required",
			apply: (*model.Field).SetAsRequired,
			want:  model.Field{FieldNumber: "1", Enabled: "1", Required: "1", Lock: "0"},
		},
		{
			name:  "modified only",
			apply: (*model.Field).SetAsModified,
			want:  model.Field{FieldNumber: "1", Enabled: "1", Required: "1", Lock: "0"},
		},
		{
			name:  "value",
			apply: func(f *model.Field) { f.SetFieldValue("new") },
			want:  model.Field{FieldNumber: "1", FieldValue: "new", Enabled: "1", Required: "1", Lock: "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := model.Field{FieldNumber: "1", Enabled: "1", Required: "1", Lock: "0"}
			tt.apply(&field)

			if !field.Equal(tt.want) {
				t.Fatalf("expected %+v, got %+v", tt.want, field)
			}
			if !field.IsModified() {
				t.Fatalf("expected field to be marked modified")
			}
		})
	}
}
