// Package validation checks Option documents before they are handed back to
// the host. Structural checks run through a kin-openapi schema; the
// remaining rules walk the forms directly.
package validation
