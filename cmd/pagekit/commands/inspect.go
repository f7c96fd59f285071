package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/agiangrant/pagekit/geom"
	"github.com/agiangrant/pagekit/retained"
	"github.com/agiangrant/pagekit/scene"
)

// Inspect implements the 'pagekit inspect' command
func Inspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	convert := fs.String("convert", "", "Print the scene re-encoded as toml or yaml instead of the tree")
	output := fs.String("o", "", "With -convert, save to this path instead of printing (extension added if missing)")
	width := fs.Int("w", 0, "Lay out at this window width")
	height := fs.Int("h", 0, "Lay out at this window height")
	fs.Parse(args)

	root, cfg, err := loadProject()
	if err != nil {
		return err
	}
	files := projectFiles(root, cfg, fs.Args())
	if *output != "" && (*convert == "" || len(files) != 1) {
		return fmt.Errorf("-o needs -convert and exactly one scene file")
	}
	for _, file := range files {
		doc, err := scene.Load(file)
		if err != nil {
			return err
		}
		if *convert != "" {
			if *output != "" {
				path, err := convertScene(doc, scene.Format(*convert), *output)
				if err != nil {
					return err
				}
				fmt.Printf("  ✓ %s\n", path)
				continue
			}
			data, err := doc.Marshal(scene.Format(*convert))
			if err != nil {
				return err
			}
			os.Stdout.Write(data)
			continue
		}
		win, err := doc.NewWindow(nil)
		if err != nil {
			return err
		}
		w, h := win.Size()
		if *width > 0 {
			w = float32(*width)
		}
		if *height > 0 {
			h = float32(*height)
		}
		win.Resize(w, h)
		fmt.Printf("%s (%gx%g)\n", file, w, h)
		printTree(os.Stdout, win)
	}
	return nil
}

// convertScene saves doc in format at path. A path without an extension
// takes the format's.
func convertScene(doc *scene.Document, format scene.Format, path string) (string, error) {
	filter := scene.FilterFor(format)
	if filter == 0 {
		return "", fmt.Errorf("%q: %w", format, scene.ErrUnknownFormat)
	}
	return doc.SaveAs(path, filter)
}

// printTree lays win out and writes one line per widget: path, kind,
// rendered rectangle and state flags.
func printTree(out io.Writer, win *retained.Window) {
	win.Layout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tKIND\tRECT\tSTATE")
	for _, p := range win.Pages() {
		printPage(tw, p)
	}
	tw.Flush()
}

func printPage(tw io.Writer, p *retained.Page) {
	for _, w := range p.Widgets() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", w.Path(), w.Kind(), formatRect(w.Rendered()), flags(w))
		if c := w.Content(); c != nil {
			printPage(tw, c)
		}
		if t := w.Tabs(); t != nil {
			for _, name := range t.Names() {
				tab, _ := t.Page(name)
				printPage(tw, tab)
			}
		}
	}
}

func formatRect(r geom.Rect) string {
	return fmt.Sprintf("%g,%g %gx%g", r.Left, r.Top, r.Width(), r.Height())
}

func flags(w *retained.Widget) string {
	var f []string
	if !w.Visible() {
		f = append(f, "hidden")
	}
	if !w.Enabled() {
		f = append(f, "disabled")
	}
	if w.Static() {
		f = append(f, "static")
	}
	if len(f) == 0 {
		return "-"
	}
	return strings.Join(f, ",")
}
