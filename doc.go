// Package scriptlink is the entry point for working with ScriptLink Option
// documents: load them from files or standard input, change fields through
// orchestrator operations and render the result with a registered renderer.
//
//	out, err := scriptlink.RenderSource(ctx,
//		document.SourceFromFile("option.json"), false, "markup",
//		scriptlink.RenderOptions{IncludeDocument: true},
//		[]scriptlink.Operation{{Kind: orchestrator.OpDisableAll}},
//	)
//
// Field-level lookups and mutations live in pkg/forms; the data types are in
// pkg/model.
package scriptlink
