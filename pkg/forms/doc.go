// Package forms locates and updates fields inside ScriptLink forms.
//
// Lookups take a model.Form by value and resolve field numbers and row ids by
// exact string comparison, first match wins. Lookups that target the current
// row treat a missing row like a missing field: they return "" or false
// instead of an error.
//
// SetFieldValue and the Set*Fields helpers copy the row they change and
// return a new Form, leaving the argument as it was. DisableAllFields works
// on a whole Option (either generation) and updates the fields in place.
package forms
