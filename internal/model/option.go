package model

// FormsContainer is the capability shared by both Option generations. Engine
// and renderer code is written once against it. Implementations must tolerate
// nil receivers.
type FormsContainer interface {
	FormList() []Form
}

var (
	_ FormsContainer = (*Option)(nil)
	_ FormsContainer = (*LegacyOption)(nil)
)

// FormList returns the forms held by the option. The slice is shared, so
// writes through its elements reach the option.
func (o *Option) FormList() []Form {
	if o == nil {
		return nil
	}
	return o.Forms
}

// FormList returns the forms held by the legacy option.
func (o *LegacyOption) FormList() []Form {
	if o == nil {
		return nil
	}
	return o.Forms
}

// ToLegacy converts the option into the first generation shape. The session
// token has no legacy counterpart and is dropped.
func (o *Option) ToLegacy() *LegacyOption {
	if o == nil {
		return nil
	}
	return &LegacyOption{
		Header: o.Header,
		Forms:  cloneForms(o.Forms),
	}
}

// ToOption converts the legacy option into the revised shape.
func (o *LegacyOption) ToOption() *Option {
	if o == nil {
		return nil
	}
	return &Option{
		Header: o.Header,
		Forms:  cloneForms(o.Forms),
	}
}

// Clone returns a deep copy of the row, modified markers included.
func (r Row) Clone() Row {
	out := r
	if r.Fields != nil {
		out.Fields = append([]Field(nil), r.Fields...)
	}
	return out
}

// Clone returns a deep copy of the form.
func (f Form) Clone() Form {
	out := f
	if f.CurrentRow != nil {
		current := f.CurrentRow.Clone()
		out.CurrentRow = &current
	}
	if f.OtherRows != nil {
		out.OtherRows = make([]Row, len(f.OtherRows))
		for i, row := range f.OtherRows {
			out.OtherRows[i] = row.Clone()
		}
	}
	return out
}

func cloneForms(forms []Form) []Form {
	if forms == nil {
		return nil
	}
	out := make([]Form, len(forms))
	for i, form := range forms {
		out[i] = form.Clone()
	}
	return out
}
