package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/goliatone/go-scriptlink/internal/config"
	"github.com/goliatone/go-scriptlink/internal/loader"
	"github.com/goliatone/go-scriptlink/internal/state"
	"github.com/goliatone/go-scriptlink/pkg/document"
	"github.com/goliatone/go-scriptlink/pkg/editor"
	"github.com/goliatone/go-scriptlink/pkg/forms"
	"github.com/goliatone/go-scriptlink/pkg/model"
	"github.com/goliatone/go-scriptlink/pkg/orchestrator"
)

func newOrchestrator(env *state.LocalEnv, transformers ...orchestrator.Transformer) *orchestrator.Orchestrator {
	options := []orchestrator.Option{
		orchestrator.WithLoader(loader.New(document.NewLoaderOptions(document.WithStdin(env.Stdin)))),
		orchestrator.WithLogger(env.Log),
		orchestrator.WithTransformers(transformers...),
	}
	if env.Cfg != nil {
		options = append(options,
			orchestrator.WithDefaultRenderer(env.Cfg.Render.Renderer),
			orchestrator.WithValidation(env.Cfg.Validate),
		)
	}
	return orchestrator.New(options...)
}

// loadDocument reads --input and keeps the document so output can default to
// its format.
func loadDocument(ctx context.Context, cmd *cli.Command) (document.Document, error) {
	env := state.EnvFromContext(ctx)
	src := document.SourceFromArg(cmd.String("input"))
	doc, err := loader.New(document.NewLoaderOptions(document.WithStdin(env.Stdin))).Load(ctx, src)
	if err != nil {
		return document.Document{}, fmt.Errorf("unable to read option document: %w", err)
	}
	env.Log.Debug("Option document loaded", zap.String("source", doc.Location()), zap.String("format", string(doc.Format())))
	return doc, nil
}

func loadOption(ctx context.Context, cmd *cli.Command) (model.FormsContainer, document.Document, error) {
	doc, err := loadDocument(ctx, cmd)
	if err != nil {
		return nil, doc, err
	}
	option, err := document.Decode(doc, cmd.Root().Bool("legacy"))
	if err != nil {
		return nil, doc, err
	}
	return option, doc, nil
}

func lookupForm(option model.FormsContainer, formID string) (model.Form, error) {
	form, ok := forms.Form(option, formID)
	if !ok {
		return model.Form{}, fmt.Errorf("%w: %q", orchestrator.ErrFormNotFound, formID)
	}
	return form, nil
}

// openOutput returns the destination for --output, or the command writer.
func openOutput(cmd *cli.Command) (io.Writer, string, func() error, error) {
	fname := cmd.String("output")
	if len(fname) == 0 {
		w := cmd.Root().Writer
		if w == nil {
			w = os.Stdout
		}
		return w, "STDOUT", func() error { return nil }, nil
	}
	f, err := os.Create(fname)
	if err != nil {
		return nil, fname, nil, fmt.Errorf("unable to create destination file '%s': %w", fname, err)
	}
	return f, fname, f.Close, nil
}

func writeOutput(ctx context.Context, cmd *cli.Command, data []byte) (err error) {
	out, fname, closer, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer(); cerr != nil && err == nil {
			err = fmt.Errorf("unable to close destination file '%s': %w", fname, cerr)
		}
	}()
	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	state.EnvFromContext(ctx).Log.Debug("Output written", zap.String("file", fname), zap.Int("bytes", len(data)))
	return nil
}

func writeOption(ctx context.Context, cmd *cli.Command, option model.FormsContainer, doc document.Document) error {
	format := doc.Format()
	if raw := cmd.String("format"); raw != "" {
		parsed, err := document.ParseFormat(raw)
		if err != nil {
			return err
		}
		format = parsed
	}
	data, err := document.Encode(option, format)
	if err != nil {
		return fmt.Errorf("unable to encode option: %w", err)
	}
	return writeOutput(ctx, cmd, data)
}

// process runs ops through the orchestrator and writes the revised option.
func process(ctx context.Context, cmd *cli.Command, ops []orchestrator.Operation, transformers ...orchestrator.Transformer) error {
	env := state.EnvFromContext(ctx)
	doc, err := loadDocument(ctx, cmd)
	if err != nil {
		return err
	}
	result, err := newOrchestrator(env, transformers...).Process(ctx, orchestrator.Request{
		Document:   &doc,
		Legacy:     cmd.Root().Bool("legacy"),
		Operations: ops,
	})
	if err != nil {
		return err
	}
	return writeOption(ctx, cmd, result.Option, doc)
}

func runGet(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return errors.New("at least one FIELD is required")
	}
	option, _, err := loadOption(ctx, cmd)
	if err != nil {
		return err
	}
	form, err := lookupForm(option, cmd.String("form"))
	if err != nil {
		return err
	}

	var b strings.Builder
	rowID := cmd.String("row")
	for _, number := range cmd.Args().Slice() {
		value := forms.FieldValue(form, number)
		if rowID != "" {
			value = forms.RowFieldValue(form, rowID, number)
		}
		if !cmd.Bool("details") {
			fmt.Fprintln(&b, value)
			continue
		}
		fmt.Fprintf(&b, "%s\t%s\tpresent=%t\tenabled=%t\trequired=%t\tlocked=%t\n", number, value,
			forms.IsFieldPresent(form, number),
			forms.IsFieldEnabled(form, number),
			forms.IsFieldRequired(form, number),
			forms.IsFieldLocked(form, number))
	}
	return writeOutput(ctx, cmd, []byte(b.String()))
}

func runValues(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return errors.New("exactly one FIELD is required")
	}
	option, _, err := loadOption(ctx, cmd)
	if err != nil {
		return err
	}
	form, err := lookupForm(option, cmd.String("form"))
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, value := range forms.FieldValues(form, cmd.Args().First()) {
		fmt.Fprintln(&b, value)
	}
	return writeOutput(ctx, cmd, []byte(b.String()))
}

func runSet(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 || len(args)%2 != 0 {
		return errors.New("FIELD VALUE pairs are required")
	}
	ops := make([]orchestrator.Operation, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		ops = append(ops, orchestrator.Operation{
			Kind:   orchestrator.OpSetValue,
			FormID: cmd.String("form"),
			RowID:  cmd.String("row"),
			Fields: []string{args[i]},
			Value:  args[i+1],
		})
	}
	return process(ctx, cmd, ops)
}

func runFlagOperation(kind orchestrator.OperationKind) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		op := orchestrator.Operation{Kind: kind, FormID: cmd.String("form"), Fields: cmd.Args().Slice()}
		if len(op.Fields) == 0 {
			if kind != orchestrator.OpDisable {
				return errors.New("at least one FIELD is required")
			}
			op.Kind = orchestrator.OpDisableAll
		}
		return process(ctx, cmd, []orchestrator.Operation{op})
	}
}

func runApply(ctx context.Context, cmd *cli.Command) error {
	preset, err := os.ReadFile(cmd.String("preset"))
	if err != nil {
		return fmt.Errorf("unable to read preset: %w", err)
	}
	transformer, err := orchestrator.NewPresetTransformer(preset)
	if err != nil {
		return err
	}
	state.EnvFromContext(ctx).Log.Debug("Preset loaded", zap.Int("operations", len(transformer.Operations())))
	return process(ctx, cmd, nil, transformer)
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	doc, err := loadDocument(ctx, cmd)
	if err != nil {
		return err
	}

	renderCfg := config.RenderConfig{IncludeDocument: true}
	if env.Cfg != nil {
		renderCfg = env.Cfg.Render
	}
	opts, err := renderCfg.RenderOptions()
	if err != nil {
		return err
	}
	if cmd.Bool("fragment") {
		opts.IncludeDocument = false
	}
	if title := cmd.String("title"); title != "" {
		opts.Title = title
	}

	result, err := newOrchestrator(env).Process(ctx, orchestrator.Request{
		Document:      &doc,
		Legacy:        cmd.Root().Bool("legacy"),
		Render:        true,
		Renderer:      cmd.String("renderer"),
		RenderOptions: opts,
	})
	if err != nil {
		return err
	}
	return writeOutput(ctx, cmd, result.Output)
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	doc, err := loadDocument(ctx, cmd)
	if err != nil {
		return err
	}
	result, err := newOrchestrator(env).Process(ctx, orchestrator.Request{
		Document: &doc,
		Legacy:   cmd.Root().Bool("legacy"),
		Validate: true,
	})
	if result.Validation == nil {
		return err
	}

	var b strings.Builder
	if result.Validation.Valid {
		fmt.Fprintf(&b, "%s: valid\n", doc.Location())
	}
	for _, issue := range result.Validation.Issues {
		location := issue.Field
		if location == "" {
			location = "(document)"
		}
		fmt.Fprintf(&b, "%s: %s: %s\n", doc.Location(), location, issue.Message)
	}
	if werr := writeOutput(ctx, cmd, []byte(b.String())); werr != nil {
		return werr
	}
	return err
}

func runEdit(ctx context.Context, cmd *cli.Command) error {
	if src := document.SourceFromArg(cmd.String("input")); src.Kind() == document.SourceKindStdin {
		return errors.New("edit needs --input FILE, STDIN is used for prompts")
	}
	option, doc, err := loadOption(ctx, cmd)
	if err != nil {
		return err
	}

	ed := editor.New(
		editor.WithPromptDriver(editor.NewSurveyDriver(os.Stderr)),
		editor.WithConfirm(cmd.Bool("confirm")),
	)
	if formID := cmd.String("form"); formID != "" {
		idx, ok := forms.FindForm(option, formID)
		if !ok {
			return fmt.Errorf("%w: %q", orchestrator.ErrFormNotFound, formID)
		}
		edited, err := ed.EditForm(ctx, option.FormList()[idx])
		if err != nil {
			return err
		}
		option.FormList()[idx] = edited
	} else if err := ed.EditOption(ctx, option); err != nil {
		return err
	}
	return writeOption(ctx, cmd, option, doc)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var (
		err  error
		data []byte
		kind string
	)
	if cmd.Bool("default") || env.Cfg == nil {
		kind = "default"
		data = config.Prepare()
	} else {
		kind = "actual"
		if data, err = config.Dump(env.Cfg); err != nil {
			return fmt.Errorf("unable to get configuration: %w", err)
		}
	}

	fname := cmd.Args().Get(0)
	if len(fname) == 0 {
		w := cmd.Root().Writer
		if w == nil {
			w = os.Stdout
		}
		env.Log.Info("Outputing configuration", zap.String("state", kind), zap.String("file", "STDOUT"))
		_, err = w.Write(data)
	} else {
		env.Log.Info("Outputing configuration", zap.String("state", kind), zap.String("file", fname))
		err = os.WriteFile(fname, data, 0644)
	}
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
