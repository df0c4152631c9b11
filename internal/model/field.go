package model

// IsEnabled reports whether the Enabled flag is set.
func (f Field) IsEnabled() bool {
	return f.Enabled == FlagOn
}

// IsLocked reports whether the Lock flag is set.
func (f Field) IsLocked() bool {
	return f.Lock == FlagOn
}

// IsRequired reports whether the Required flag is set.
func (f Field) IsRequired() bool {
	return f.Required == FlagOn
}

// IsModified reports whether any setter touched the field since it was built.
func (f Field) IsModified() bool {
	return f.modified
}

// SetAsDisabled clears both Enabled and Required; a disabled field can never
// stay required.
func (f *Field) SetAsDisabled() {
	f.modified = true
	f.Enabled = FlagOff
	f.Required = FlagOff
}

func (f *Field) SetAsEnabled() {
	f.modified = true
	f.Enabled = FlagOn
}

func (f *Field) SetAsLocked() {
	f.modified = true
	f.Lock = FlagOn
}

func (f *Field) SetAsUnlocked() {
	f.modified = true
	f.Lock = FlagOff
}

// SetAsOptional keeps the field enabled but drops the Required flag.
func (f *Field) SetAsOptional() {
	f.modified = true
	f.Enabled = FlagOn
	f.Required = FlagOff
}

// SetAsRequired enables the field and marks it required.
func (f *Field) SetAsRequired() {
	f.modified = true
	f.Enabled = FlagOn
	f.Required = FlagOn
}

// SetAsModified flags the field without changing any attribute.
func (f *Field) SetAsModified() {
	f.modified = true
}

// SetFieldValue replaces the value and flags the field as modified.
func (f *Field) SetFieldValue(value string) {
	f.modified = true
	f.FieldValue = value
}
