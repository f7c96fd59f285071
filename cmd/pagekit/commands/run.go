package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/agiangrant/pagekit/internal/term"
	"github.com/agiangrant/pagekit/retained"
	"github.com/agiangrant/pagekit/scene"
)

// Run implements the 'pagekit run' command: it shows a scene in the
// terminal until Ctrl+C or the close button.
func Run(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	page := fs.String("page", "", "Page to show first")
	verbose := fs.Bool("v", false, "Verbose logging")
	fs.Parse(args)
	retained.SetVerbose(*verbose)

	root, cfg, err := loadProject()
	if err != nil {
		return err
	}
	files := projectFiles(root, cfg, fs.Args())
	if len(files) != 1 {
		return fmt.Errorf("run needs exactly one scene file, got %d", len(files))
	}
	doc, err := scene.Load(files[0])
	if err != nil {
		return err
	}
	win, err := doc.NewWindow(nil)
	if err != nil {
		return err
	}
	start := *page
	if start == "" {
		start = cfg.Scene.StartPage
	}
	if start != "" && !win.ShowPage(start) {
		return fmt.Errorf("%s: no page %q", files[0], start)
	}

	screen, err := term.NewScreen()
	if err != nil {
		return err
	}
	host := term.NewHost(screen, win, term.Options{
		CellWidth:  cfg.Term.CellWidth,
		CellHeight: cfg.Term.CellHeight,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return host.Run(ctx)
}
