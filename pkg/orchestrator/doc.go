// Package orchestrator wires the load, decode, validate, mutate and render
// steps into a single Process call. Every stage can be replaced through
// options; missing ones fall back to the built-in implementations.
package orchestrator
