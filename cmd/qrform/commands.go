package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/dispatcher"
	"github.com/goliatone/go-qrform/pkg/model"
	"github.com/goliatone/go-qrform/pkg/orchestrator"
	"github.com/goliatone/go-qrform/pkg/render"
	"github.com/goliatone/go-qrform/pkg/renderers/tui"
)

// errUsage marks flag errors already reported by the flag package.
var errUsage = errors.New("usage")

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("qrform "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

func (a *app) types(args []string) error {
	fs := a.flagSet("types")
	asJSON := fs.Bool("json", false, "print descriptors as JSON")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if *asJSON {
		return a.printJSON(content.DescribeAll())
	}
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, id := range content.Types() {
		fmt.Fprintf(tw, "%s\t%s\n", id, id.Label())
	}
	return tw.Flush()
}

func (a *app) fields(args []string) error {
	fs := a.flagSet("fields")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(a.stderr, "usage: qrform fields <type>")
		return errUsage
	}
	id, err := content.ParseTypeID(fs.Arg(0))
	if err != nil {
		return err
	}
	desc, err := content.Describe(id)
	if err != nil {
		return err
	}
	return a.printJSON(desc)
}

func (a *app) build(ctx context.Context, args []string) error {
	fs := a.flagSet("build")
	in := fs.String("in", "-", "request JSON file, - for stdin")
	out := fs.String("out", "", "image file, stdout when empty")
	preview := fs.Bool("preview", false, "print a text rendering to stderr")
	a.cfg.BindEncoderFlags(fs)
	if err := a.parse(fs, args); err != nil {
		return err
	}

	req, err := a.readRequest(*in)
	if err != nil {
		return err
	}
	return a.encode(ctx, req, *out, *preview)
}

func (a *app) payload(args []string) error {
	fs := a.flagSet("payload")
	in := fs.String("in", "-", "request JSON file, - for stdin")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	req, err := a.readRequest(*in)
	if err != nil {
		return err
	}
	disp, err := a.dispatcher()
	if err != nil {
		return err
	}
	payload, err := disp.Payload(req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, payload)
	return err
}

func (a *app) prompt(ctx context.Context, args []string) error {
	fs := a.flagSet("prompt")
	typeName := fs.String("type", "", "content type, asked for when empty")
	out := fs.String("out", "", "image file, the generated name when empty")
	locale := fs.String("locale", a.cfg.Locale, "form locale")
	preview := fs.Bool("preview", false, "print a text rendering to stderr")
	a.cfg.BindEncoderFlags(fs)
	if err := a.parse(fs, args); err != nil {
		return err
	}

	driver := a.driver
	if driver == nil {
		driver = tui.NewSurveyDriver(a.stderr)
	}

	id, err := a.chooseType(ctx, driver, *typeName)
	if err != nil {
		return err
	}

	orch := orchestrator.New()
	form, err := orch.Form(ctx, id, orch.MatchLocale(*locale))
	if err != nil {
		return err
	}

	renderer, err := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithValidator(a.validator(id, form)),
	)
	if err != nil {
		return err
	}
	values, err := renderer.Collect(ctx, form, render.RenderOptions{})
	if err != nil {
		return err
	}

	sub := render.SubmissionFromValues(form, values)
	opts, err := dispatcher.WireStyleFromMap(sub.Style).Options(a.palettes)
	if err != nil {
		return err
	}
	req := dispatcher.Request{Type: id, Values: sub.Values, Style: opts}

	target := *out
	if target == "" {
		target = dispatcher.Filename("", opts.Format)
	}
	return a.encode(ctx, req, target, *preview)
}

func (a *app) chooseType(ctx context.Context, driver tui.PromptDriver, name string) (content.TypeID, error) {
	if name != "" {
		return content.ParseTypeID(name)
	}
	types := content.Types()
	labels := make([]string, 0, len(types))
	for _, id := range types {
		labels = append(labels, id.Label())
	}
	idx, err := driver.Select(ctx, tui.SelectConfig{Message: "QR code type", Options: labels, PageSize: len(labels)})
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(types) {
		return 0, fmt.Errorf("qrform: type selection %d out of range", idx)
	}
	return types[idx], nil
}

// validator checks a round of prompt answers the way a build would, keyed
// by form field so only failing prompts are asked again.
func (a *app) validator(id content.TypeID, form model.FormModel) tui.Validator {
	return func(values map[string]any) map[string][]string {
		sub := render.SubmissionFromValues(form, values)

		var problems []*content.ValidationError
		if _, err := dispatcher.WireStyleFromMap(sub.Style).Options(a.palettes); err != nil {
			var verr *content.ValidationError
			if errors.As(err, &verr) {
				problems = append(problems, verr)
			}
		}
		more, err := content.ValidateAll(id, sub.Values)
		if err != nil {
			return map[string][]string{"form": {err.Error()}}
		}
		problems = append(problems, more...)

		mapping := render.MapValidationErrors(form, problems)
		if len(mapping.Form) == 0 {
			return mapping.Fields
		}
		out := map[string][]string{"form": mapping.Form}
		for name, messages := range mapping.Fields {
			out[name] = messages
		}
		return out
	}
}

func (a *app) encode(ctx context.Context, req dispatcher.Request, out string, preview bool) error {
	disp, err := a.dispatcher()
	if err != nil {
		return err
	}
	res, err := disp.Build(ctx, req)
	if err != nil {
		return err
	}

	if preview {
		if err := a.preview(res.Payload); err != nil {
			return err
		}
	}

	if out == "" {
		_, err := a.stdout.Write(res.Data)
		return err
	}
	if err := os.WriteFile(out, res.Data, 0o644); err != nil {
		return fmt.Errorf("qrform: write image: %w", err)
	}
	fmt.Fprintf(a.stderr, "wrote %s (%d bytes, %s)\n", out, len(res.Data), res.ContentType)
	return nil
}

func (a *app) preview(payload string) error {
	raster, err := a.cfg.Encoder.Raster()
	if err != nil {
		return err
	}
	text, err := raster.Terminal(payload)
	if err != nil {
		return &dispatcher.EncodingError{Cause: err}
	}
	_, err = fmt.Fprint(a.stderr, text)
	return err
}

func (a *app) readRequest(path string) (dispatcher.Request, error) {
	var r io.Reader = a.stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return dispatcher.Request{}, fmt.Errorf("qrform: open request: %w", err)
		}
		defer f.Close()
		r = f
	}
	return dispatcher.DecodeRequest(r, a.palettes)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
