package model

import internalmodel "github.com/goliatone/go-scriptlink/internal/model"

type Field = internalmodel.Field
type Row = internalmodel.Row
type Form = internalmodel.Form
type Header = internalmodel.Header
type Option = internalmodel.Option
type LegacyOption = internalmodel.LegacyOption

// FormsContainer re-exports the capability shared by both Option variants.
type FormsContainer = internalmodel.FormsContainer

const (
	FlagOff       = internalmodel.FlagOff
	FlagOn        = internalmodel.FlagOn
	RowActionEdit = internalmodel.RowActionEdit
)

const (
	ErrorCodeNone     = internalmodel.ErrorCodeNone
	ErrorCodeError    = internalmodel.ErrorCodeError
	ErrorCodeOKCancel = internalmodel.ErrorCodeOKCancel
	ErrorCodeInfo     = internalmodel.ErrorCodeInfo
	ErrorCodeYesNo    = internalmodel.ErrorCodeYesNo
	ErrorCodeOpenURL  = internalmodel.ErrorCodeOpenURL
)
