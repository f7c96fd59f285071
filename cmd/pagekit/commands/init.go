package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"

	"github.com/agiangrant/pagekit/geom"
	"github.com/agiangrant/pagekit/retained"
	"github.com/agiangrant/pagekit/scene"
)

// Init implements the 'pagekit init' command
func Init(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	name := fs.String("name", "", "Project name (default: from go.mod or the directory)")
	format := fs.String("format", "toml", "Scene format: toml or yaml")
	force := fs.Bool("force", false, "Overwrite existing files")
	fs.Parse(args)

	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	created, err := initProject(dir, *name, scene.Format(*format), *force)
	if err != nil {
		return err
	}

	for _, f := range created {
		fmt.Printf("  ✓ Created %s\n", f)
	}
	fmt.Println("")
	fmt.Println("✓ Project initialized!")
	fmt.Println("")
	fmt.Println("Next steps:")
	fmt.Println("  pagekit inspect   # Print the widget tree")
	fmt.Println("  pagekit render    # Render every page to PNG")
	fmt.Println("  pagekit run       # Run the scene in the terminal")
	return nil
}

// initProject writes pagekit.toml and a starter scene into dir and returns
// the files it created.
func initProject(dir, name string, format scene.Format, force bool) ([]string, error) {
	if format != scene.FormatTOML && format != scene.FormatYAML {
		return nil, fmt.Errorf("%q: %w", format, scene.ErrUnknownFormat)
	}
	if _, err := os.Stat(filepath.Join(dir, ConfigFile)); err == nil && !force {
		return nil, fmt.Errorf("%s already exists (use --force to overwrite)", ConfigFile)
	}

	if name == "" {
		name = defaultAppName(dir)
	}
	sceneFile := "scene." + string(format)

	cfg := DefaultConfig()
	cfg.App.Name = name
	cfg.Scene.Files = []string{sceneFile}
	if err := SaveConfig(dir, cfg); err != nil {
		return nil, err
	}
	created := []string{ConfigFile}

	scenePath := filepath.Join(dir, sceneFile)
	if _, err := os.Stat(scenePath); os.IsNotExist(err) || force {
		if err := starterScene(name).Save(scenePath); err != nil {
			return created, err
		}
		created = append(created, sceneFile)
	}
	return created, nil
}

// defaultAppName takes the last element of the go.mod module path, dropping
// any major version suffix, or the directory name without a go.mod.
func defaultAppName(dir string) string {
	base := filepath.Base(dir)
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return base
	}
	modName, _, ok := module.SplitPathVersion(modfile.ModulePath(data))
	if ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	return base
}

// starterScene builds the document init writes: a main page with a list, a
// toggle and buttons anchored to the bottom-right corner.
func starterScene(title string) *scene.Document {
	cfg := retained.DefaultWindowConfig()
	cfg.Title = title
	cfg.Width, cfg.Height = 640, 480
	cfg.MinWidth, cfg.MinHeight = 320, 240

	anchored := geom.Anchored(true, true)
	return &scene.Document{
		Window: cfg,
		Pages: []scene.Page{{
			Name: "main",
			Widgets: []scene.Widget{
				{Name: "title", Kind: retained.KindLabel, Text: "Welcome to " + title, Rect: []float32{16, 16, 400, 40}},
				{
					Name:   "items",
					Kind:   retained.KindList,
					Rect:   []float32{16, 56, 300, 360},
					Resize: geom.Stretched(true, true),
					Items:  []string{"First", "Second", "Third"},
				},
				{Name: "enabled", Kind: retained.KindToggle, Text: "Enabled", Rect: []float32{320, 56, 480, 80}, Resize: geom.Anchored(true, false), On: true},
				{Name: "ok", Kind: retained.KindButton, Text: "OK", Rect: []float32{440, 400, 520, 430}, Resize: anchored},
				{Name: "cancel", Kind: retained.KindButton, Text: "Cancel", Rect: []float32{536, 400, 616, 430}, Resize: anchored},
				{Name: "actions", Kind: retained.KindGroup, Members: []string{"ok", "cancel"}, Margin: 6},
			},
		}},
	}
}
