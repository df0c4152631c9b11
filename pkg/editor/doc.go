// Package editor edits ScriptLink field values interactively.
//
// The Editor asks for a form and a row, then prompts each enabled, unlocked
// field with its stored value as the default. Prompts go through a
// PromptDriver; the default driver uses survey on the controlling terminal.
package editor
