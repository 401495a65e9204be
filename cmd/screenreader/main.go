// Command screenreader is the process entrypoint: parse flags, build the
// App, run the first-run wizard if settings haven't completed one yet,
// then run until a signal or console-close event asks it to stop.
//
// Grounded on the teacher's cmd/peco/peco.go: a CmdOptions struct parsed
// by go-flags, help/version short-circuits before any real work starts,
// and main reduced to os.Exit(run()) so every deferred cleanup inside run
// still runs before the process exits.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/screenreader/core/internal/app"
	"github.com/screenreader/core/internal/elementslist"
	"github.com/screenreader/core/internal/logging"
	"github.com/screenreader/core/internal/sig"
)

// version is set at link time via -ldflags "-X main.version=vX.Y.Z",
// matching the teacher's cmd/peco/peco.go convention.
var version = "dev"

// CmdOptions holds the command-line flags parsed by go-flags, following
// the teacher's CLIOptions field-tag style (options.go).
type CmdOptions struct {
	Help    bool `short:"h" long:"help" description:"show this help message and exit"`
	Version bool `long:"version" description:"print the version and exit"`
	Debug   bool `long:"debug" description:"enable verbose development logging"`
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := &CmdOptions{}
	parser := flags.NewParser(opts, flags.PrintErrors)
	if _, err := parser.Parse(); err != nil {
		return 1
	}
	if opts.Help {
		parser.WriteHelp(os.Stderr)
		return 0
	}
	if opts.Version {
		fmt.Fprintf(os.Stderr, "screenreader: %s\n", version)
		return 0
	}

	logger, err := logging.New(opts.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		return 1
	}
	defer logger.Sync()

	a, err := app.New(app.Deps{
		Backend:        nullBackend{},
		AssetLoader:    nullAssetLoader{},
		AudioDevice:    nullAudioDevice{},
		Logger:         logger,
		ElementsListUI: runElementsListDialog,
	})
	if err != nil {
		logging.Component(logger, logging.ComponentApp).Error("startup failed", zap.Error(err))
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	// sig.Handler.Loop forwards both OS signals and, on Windows,
	// console-control (close/logoff/shutdown) events onto the same
	// channel, and calls cancel itself on either ctx cancellation or a
	// received signal (spec §5 disposal discipline).
	sigHandler := sig.New(sig.ReceivedHandlerFunc(func(s os.Signal) {
		logging.Component(logger, logging.ComponentApp).Info("signal received, shutting down", zap.String("signal", s.String()))
	}))
	go sigHandler.Loop(ctx, cancel)

	runDone := make(chan error, 1)
	go func() { runDone <- a.Run(ctx) }()

	if !a.Store().Get().FirstRunCompleted {
		if _, _, err := a.RunFirstRunWizard(ctx); err != nil && ctx.Err() == nil {
			logging.Component(logger, logging.ComponentWizard).Error("first-run wizard failed", zap.Error(err))
		}
	}

	if err := <-runDone; err != nil && ctx.Err() == nil {
		logging.Component(logger, logging.ComponentApp).Error("exited with error", zap.Error(err))
		return 1
	}
	return 0
}

// runElementsListDialog is the tcell-backed driver the app package calls
// through app.Deps.ElementsListUI: it owns every terminal concern (screen
// lifecycle, key/rune translation, drawing) so internal/elementslist stays
// free of any tcell import and unit-testable headlessly.
func runElementsListDialog(ctx context.Context, c *elementslist.Controller) *elementslist.Result {
	screen, err := tcell.NewScreen()
	if err != nil {
		return &elementslist.Result{Cancelled: true}
	}
	if err := screen.Init(); err != nil {
		return &elementslist.Result{Cancelled: true}
	}
	defer screen.Fini()

	res := elementslist.Run(ctx, screen, c)
	return &res
}
