// Package model defines the ScriptLink document consumed and produced by the
// engine: an Option holds Forms, a Form holds a current Row plus other Rows,
// and a Row holds Fields. Every attribute keeps the host's text encoding, so
// flags travel as "0"/"1" strings and identifiers are compared verbatim.
//
// Two root shapes exist for the two generations of the host API. LegacyOption
// and Option expose the same forms through FormsContainer, which is what the
// forms and render packages accept; ToOption and ToLegacy convert between
// them. Field setters (SetAsDisabled, SetAsRequired, ...) record a private
// modified marker that equality ignores.
package model
