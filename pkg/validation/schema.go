package validation

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-scriptlink/pkg/model"
)

var (
	optionSchemaOnce sync.Once
	optionSchema     *openapi3.Schema
)

// OptionSchema returns the structural schema both Option generations are
// checked against. Unknown properties are allowed so the revised
// SessionToken passes for either shape.
func OptionSchema() *openapi3.Schema {
	optionSchemaOnce.Do(func() {
		optionSchema = buildOptionSchema()
	})
	return optionSchema
}

func buildOptionSchema() *openapi3.Schema {
	flag := func() *openapi3.Schema {
		return openapi3.NewStringSchema().WithEnum(model.FlagOff, model.FlagOn)
	}

	field := openapi3.NewObjectSchema().
		WithProperty("FieldNumber", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("FieldValue", openapi3.NewStringSchema()).
		WithProperty("Enabled", flag()).
		WithProperty("Required", flag()).
		WithProperty("Lock", openapi3.NewStringSchema().WithEnum("", model.FlagOff, model.FlagOn)).
		WithRequired([]string{"FieldNumber", "Enabled"})

	row := openapi3.NewObjectSchema().
		WithProperty("RowId", openapi3.NewStringSchema()).
		WithProperty("ParentRowId", openapi3.NewStringSchema()).
		WithProperty("RowAction", openapi3.NewStringSchema()).
		WithProperty("Mode", openapi3.NewStringSchema()).
		WithProperty("Fields", openapi3.NewArraySchema().WithItems(field).WithNullable())

	form := openapi3.NewObjectSchema().
		WithProperty("FormId", openapi3.NewStringSchema()).
		WithProperty("MultipleIteration", openapi3.NewBoolSchema()).
		WithProperty("CurrentRow", cloneSchema(row).WithNullable()).
		WithProperty("OtherRows", openapi3.NewArraySchema().WithItems(row).WithNullable()).
		WithRequired([]string{"FormId"})

	return openapi3.NewObjectSchema().
		WithProperty("EntityID", openapi3.NewStringSchema()).
		WithProperty("EpisodeNumber", openapi3.NewIntegerSchema().WithMin(0)).
		WithProperty("ErrorCode", openapi3.NewIntegerSchema().
			WithMin(float64(model.ErrorCodeNone)).
			WithMax(float64(model.ErrorCodeOpenURL))).
		WithProperty("ErrorMesg", openapi3.NewStringSchema()).
		WithProperty("OptionId", openapi3.NewStringSchema()).
		WithProperty("Forms", openapi3.NewArraySchema().WithItems(form).WithNullable())
}

// cloneSchema copies the top level of s so a nullable variant does not leak
// into the array items sharing the same properties.
func cloneSchema(s *openapi3.Schema) *openapi3.Schema {
	out := *s
	return &out
}
