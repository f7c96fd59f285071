package commands

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agiangrant/pagekit/internal/raster"
	"github.com/agiangrant/pagekit/retained"
	"github.com/agiangrant/pagekit/scene"
)

// Render implements the 'pagekit render' command
func Render(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	out := fs.String("o", "", "Output directory (default: render.output_dir)")
	width := fs.Int("w", 0, "Window width override")
	height := fs.Int("h", 0, "Window height override")
	jobs := fs.Int("j", 0, "Concurrent renders (default: one per CPU)")
	verbose := fs.Bool("v", false, "Verbose logging")
	fs.Parse(args)
	retained.SetVerbose(*verbose)

	root, cfg, err := loadProject()
	if err != nil {
		return err
	}
	opts := renderOptions{
		OutputDir: cfg.Render.OutputDir,
		Width:     cfg.Render.Width,
		Height:    cfg.Render.Height,
		Jobs:      cfg.Render.Jobs,
	}
	if !filepath.IsAbs(opts.OutputDir) {
		opts.OutputDir = filepath.Join(root, opts.OutputDir)
	}
	if *out != "" {
		opts.OutputDir = *out
	}
	if *width > 0 {
		opts.Width = *width
	}
	if *height > 0 {
		opts.Height = *height
	}
	if *jobs > 0 {
		opts.Jobs = *jobs
	}

	written, err := renderScenes(context.Background(), projectFiles(root, cfg, fs.Args()), opts)
	for _, f := range written {
		fmt.Printf("  ✓ %s\n", f)
	}
	return err
}

type renderOptions struct {
	OutputDir     string
	Width, Height int
	Jobs          int
	Logger        *slog.Logger
}

// renderScenes paints every page of every scene file to a PNG named
// <scene>-<page>.png and returns the files written, sorted by scene order.
func renderScenes(ctx context.Context, files []string, opts renderOptions) ([]string, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no scene files to render")
	}
	// Output names come from the file stem, so two scenes may not share one.
	stems := make(map[string]string, len(files))
	for _, file := range files {
		stem := sceneStem(file)
		if prev, ok := stems[stem]; ok {
			return nil, fmt.Errorf("%s and %s would both render to %s-*.png", prev, file, stem)
		}
		stems[stem] = file
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", opts.OutputDir, err)
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var mu sync.Mutex
	written := make([][]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := renderScene(file, opts)
			mu.Lock()
			written[i] = out
			mu.Unlock()
			return err
		})
	}
	err := g.Wait()

	var all []string
	for _, w := range written {
		all = append(all, w...)
	}
	return all, err
}

func renderScene(file string, opts renderOptions) ([]string, error) {
	doc, err := scene.Load(file)
	if err != nil {
		return nil, err
	}
	win, err := doc.NewWindow(retained.NewContext(nil, opts.Logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	w, h := win.Size()
	if opts.Width > 0 {
		w = float32(opts.Width)
	}
	if opts.Height > 0 {
		h = float32(opts.Height)
	}
	win.Resize(w, h)
	w, h = win.Size()

	r := raster.New(int(w), int(h), opts.Logger)
	if err := win.Create(r, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	defer win.Close()

	stem := sceneStem(file)
	var out []string
	for _, p := range win.Pages() {
		win.ShowPage(p.Name())
		// A second paint picks up text that spilled past its widget.
		for range 2 {
			if err := win.Paint(); err != nil {
				return out, fmt.Errorf("%s: page %s: %w", file, p.Name(), err)
			}
		}
		path := filepath.Join(opts.OutputDir, stem+"-"+p.Name()+".png")
		if err := r.SavePNG(path); err != nil {
			return out, err
		}
		out = append(out, path)
	}
	return out, nil
}

// sceneStem is the file name of a scene without directory or extension.
func sceneStem(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}
