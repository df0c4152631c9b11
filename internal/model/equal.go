package model

// Equal compares every public attribute. The modified marker is ignored.
func (f Field) Equal(other Field) bool {
	return f.FieldNumber == other.FieldNumber &&
		f.FieldValue == other.FieldValue &&
		f.Enabled == other.Enabled &&
		f.Required == other.Required &&
		f.Lock == other.Lock
}

// Equal compares row identity and fields element-wise in order. A nil field
// slice equals an empty one.
func (r Row) Equal(other Row) bool {
	return r.RowID == other.RowID &&
		r.ParentRowID == other.ParentRowID &&
		r.RowAction == other.RowAction &&
		r.Mode == other.Mode &&
		fieldsEqual(r.Fields, other.Fields)
}

// Equal compares form attributes, the current row and other rows. Two nil
// current rows are equal; a nil and a non-nil current row are not.
func (f Form) Equal(other Form) bool {
	return f.FormID == other.FormID &&
		f.MultipleIteration == other.MultipleIteration &&
		rowPtrEqual(f.CurrentRow, other.CurrentRow) &&
		rowsEqual(f.OtherRows, other.OtherRows)
}

// Equal compares the header and forms of two legacy options.
func (o *LegacyOption) Equal(other *LegacyOption) bool {
	if o == nil || other == nil {
		return o == nil && other == nil
	}
	return o.Header == other.Header && formsEqual(o.Forms, other.Forms)
}

// Equal compares the header, session token and forms of two options.
func (o *Option) Equal(other *Option) bool {
	if o == nil || other == nil {
		return o == nil && other == nil
	}
	return o.Header == other.Header &&
		o.SessionToken == other.SessionToken &&
		formsEqual(o.Forms, other.Forms)
}

func rowPtrEqual(a, b *Row) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func fieldsEqual(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func rowsEqual(a, b []Row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func formsEqual(a, b []Form) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
