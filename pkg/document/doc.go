// Package document wraps raw Option payloads with their origin and decodes
// them into either Option generation. JSON and YAML are supported; the
// format comes from the file extension or, failing that, the payload.
package document
