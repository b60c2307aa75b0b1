// Command qrform lists content types, formats payloads and writes QR images
// from JSON requests or an interactive terminal form.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-qrform/internal/config"
	"github.com/goliatone/go-qrform/internal/logging"
	"github.com/goliatone/go-qrform/pkg/dispatcher"
	"github.com/goliatone/go-qrform/pkg/encoder"
	"github.com/goliatone/go-qrform/pkg/renderers/tui"
	"github.com/goliatone/go-qrform/pkg/style"
)

const usage = `usage: qrform <command> [flags]

commands:
  types                     list content types
  fields <type>             print the fields of a type as JSON
  build [-in f] [-out f]    encode a JSON request into an image
  payload [-in f]           print the payload of a JSON request
  prompt [-type t] [-out f] fill in a terminal form and encode it
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(a.run(ctx, os.Args[1:]))
}

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// driver and encoder are injected by tests.
	driver  tui.PromptDriver
	encoder encoder.Encoder

	cfg      config.Config
	logger   zerolog.Logger
	palettes *style.Palettes
}

func (a *app) run(ctx context.Context, args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(a.stderr, "qrform: %v\n", err)
		return 1
	}
	a.cfg = cfg
	a.logger = logging.New(cfg.AppEnv, a.stderr)
	a.palettes = style.DefaultPalettes()

	if len(args) == 0 {
		fmt.Fprint(a.stderr, usage)
		return 1
	}

	var cmdErr error
	switch args[0] {
	case "types":
		cmdErr = a.types(args[1:])
	case "fields":
		cmdErr = a.fields(args[1:])
	case "build":
		cmdErr = a.build(ctx, args[1:])
	case "payload":
		cmdErr = a.payload(args[1:])
	case "prompt":
		cmdErr = a.prompt(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(a.stdout, usage)
		return 0
	default:
		fmt.Fprintf(a.stderr, "qrform: unknown command %q\n\n%s", args[0], usage)
		return 1
	}
	return a.exit(cmdErr)
}

// exit reports err on stderr, naming its kind, and returns the exit status.
func (a *app) exit(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, errUsage) {
		return 1
	}
	kind := dispatcher.ErrorKind(err)
	label := kind.String()
	if errors.Is(err, dispatcher.ErrMalformedRequest) {
		label = "malformed"
	}
	fmt.Fprintf(a.stderr, "qrform: %s: %v\n", label, err)
	a.logger.Debug().Err(err).Str("kind", label).Msg("command failed")
	return kind.ExitCode()
}

func (a *app) dispatcher() (*dispatcher.Dispatcher, error) {
	enc := a.encoder
	if enc == nil {
		raster, err := a.cfg.Encoder.Raster()
		if err != nil {
			return nil, err
		}
		enc = raster
	}
	return dispatcher.New(enc, dispatcher.WithLogger(a.logger)), nil
}
