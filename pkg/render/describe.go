package render

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

// ErrUnsupportedEntity is returned when an entity cannot be described, which
// only happens for values that are not structs (or pointers to structs).
var ErrUnsupportedEntity = errors.New("render: unsupported entity")

const (
	summaryNameHeader  = "Property"
	summaryValueHeader = "Value"

	titleLevel = 1
	maxLevel   = 6
)

// Attribute is one exported scalar attribute of an entity.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Table is a header row plus zero or more data rows.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Block is either a heading or a table. Renderers emit blocks in order.
type Block struct {
	Heading string `json:"heading,omitempty"`
	Level   int    `json:"level,omitempty"`
	Table   *Table `json:"table,omitempty"`
}

// Document is the renderer-neutral description of an entity.
type Document struct {
	Title  string  `json:"title"`
	Blocks []Block `json:"blocks"`
}

// BuildDocument walks entity through reflection. Scalar attributes land in a
// Property/Value summary table; each nested struct or collection attribute
// gets a heading and is described one level deeper. Collections of flat
// structs become a single table with one row per element. Nil nested values
// produce empty tables.
func BuildDocument(entity any) (Document, error) {
	value := reflect.ValueOf(entity)
	if !value.IsValid() {
		return Document{}, fmt.Errorf("%w: <nil>", ErrUnsupportedEntity)
	}
	typ := structType(value.Type())
	if typ == nil {
		return Document{}, fmt.Errorf("%w: %T", ErrUnsupportedEntity, entity)
	}

	doc := Document{Title: typ.String()}
	b := &builder{}
	b.describe(value, typ, titleLevel+1)
	doc.Blocks = b.blocks
	return doc, nil
}

// Attributes lists the exported scalar attributes of entity in declaration
// order. Embedded structs are flattened. Nil or non-struct entities yield nil.
func Attributes(entity any) []Attribute {
	value := reflect.ValueOf(entity)
	if !value.IsValid() {
		return nil
	}
	value, ok := derefStruct(value)
	if !ok {
		return nil
	}

	var out []Attribute
	for _, attr := range scalarFields(value.Type()) {
		out = append(out, Attribute{
			Name:  attr.Name,
			Value: formatScalar(value.FieldByIndex(attr.Index)),
		})
	}
	return out
}

// SummaryTable describes entity as Property/Value pairs.
func SummaryTable(entity any) Table {
	table := Table{Headers: []string{summaryNameHeader, summaryValueHeader}}
	for _, attr := range Attributes(entity) {
		table.Rows = append(table.Rows, []string{attr.Name, attr.Value})
	}
	return table
}

// CollectionTable describes a slice of structs. Headers come from the element
// type, so an empty or nil slice still yields its header row.
func CollectionTable(collection any) Table {
	value := reflect.ValueOf(collection)
	if !value.IsValid() || (value.Kind() != reflect.Slice && value.Kind() != reflect.Array) {
		return Table{}
	}
	elem := structType(value.Type().Elem())
	if elem == nil {
		return Table{}
	}
	return collectionTable(value, elem)
}

type builder struct {
	blocks []Block
}

func (b *builder) heading(text string, level int) {
	if level > maxLevel {
		level = maxLevel
	}
	b.blocks = append(b.blocks, Block{Heading: text, Level: level})
}

func (b *builder) table(table Table) {
	b.blocks = append(b.blocks, Block{Table: &table})
}

// describe emits the summary table of value and then its nested attributes.
// value may be a nil pointer, in which case only an empty summary is emitted.
func (b *builder) describe(value reflect.Value, typ reflect.Type, level int) {
	current, ok := derefStruct(value)
	if !ok {
		b.table(Table{Headers: []string{summaryNameHeader, summaryValueHeader}})
		return
	}
	b.table(SummaryTable(current.Interface()))

	for _, attr := range nestedFields(typ) {
		field := current.FieldByIndex(attr.Index)
		b.heading(attr.Name, level)

		switch field.Kind() {
		case reflect.Slice, reflect.Array:
			elem := structType(attr.Type.Elem())
			if hasNested(elem) {
				for i := 0; i < field.Len(); i++ {
					b.heading(elem.Name(), level+1)
					b.describe(field.Index(i), elem, level+2)
				}
				continue
			}
			b.table(collectionTable(field, elem))
		default:
			b.describe(field, structType(attr.Type), level+1)
		}
	}
}

func collectionTable(value reflect.Value, elem reflect.Type) Table {
	fields := scalarFields(elem)
	table := Table{Headers: make([]string, 0, len(fields))}
	for _, field := range fields {
		table.Headers = append(table.Headers, field.Name)
	}
	for i := 0; i < value.Len(); i++ {
		item, ok := derefStruct(value.Index(i))
		if !ok {
			continue
		}
		row := make([]string, 0, len(fields))
		for _, field := range fields {
			row = append(row, formatScalar(item.FieldByIndex(field.Index)))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// scalarFields returns exported fields holding plain values, flattening
// embedded structs.
func scalarFields(typ reflect.Type) []reflect.StructField {
	var out []reflect.StructField
	for _, field := range reflect.VisibleFields(typ) {
		if !field.IsExported() || field.Anonymous {
			continue
		}
		if isScalar(field.Type) {
			out = append(out, field)
		}
	}
	return out
}

// nestedFields returns exported struct, pointer-to-struct and struct
// collection fields.
func nestedFields(typ reflect.Type) []reflect.StructField {
	if typ == nil {
		return nil
	}
	var out []reflect.StructField
	for _, field := range reflect.VisibleFields(typ) {
		if !field.IsExported() || field.Anonymous {
			continue
		}
		switch field.Type.Kind() {
		case reflect.Slice, reflect.Array:
			if structType(field.Type.Elem()) != nil {
				out = append(out, field)
			}
		case reflect.Struct, reflect.Pointer:
			if structType(field.Type) != nil {
				out = append(out, field)
			}
		}
	}
	return out
}

func hasNested(typ reflect.Type) bool {
	return len(nestedFields(typ)) > 0
}

func isScalar(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func formatScalar(value reflect.Value) string {
	switch value.Kind() {
	case reflect.String:
		return value.String()
	case reflect.Bool:
		return strconv.FormatBool(value.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(value.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(value.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(value.Float(), 'f', -1, 64)
	default:
		return ""
	}
}

// structType unwraps pointers and returns the struct type, or nil.
func structType(typ reflect.Type) reflect.Type {
	if typ == nil {
		return nil
	}
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}
	return typ
}

func derefStruct(value reflect.Value) (reflect.Value, bool) {
	for value.IsValid() && (value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface) {
		if value.IsNil() {
			return reflect.Value{}, false
		}
		value = value.Elem()
	}
	if !value.IsValid() || value.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	return value, true
}
