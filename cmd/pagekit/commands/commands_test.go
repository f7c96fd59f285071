package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agiangrant/pagekit/scene"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.App.Name != DefaultConfig().App.Name {
		t.Errorf("App.Name = %q, want default", cfg.App.Name)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	want := DefaultConfig()
	want.App.Name = "demo"
	want.Scene.Files = []string{"a.toml", "b.yaml"}
	want.Render.Width = 1024

	if err := SaveConfig(dir, want); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	got, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if got.App.Name != "demo" || len(got.Scene.Files) != 2 || got.Render.Width != 1024 {
		t.Errorf("LoadConfig = %+v", got)
	}
}

func TestLoadConfigFillsEmptyValues(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("[app]\nname = \"x\"\n[scene]\nfiles = []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Scene.Files) != 1 || cfg.Term.CellWidth != 8 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestDefaultAppName(t *testing.T) {
	tests := []struct {
		name  string
		gomod string
		want  string
	}{
		{"no go.mod", "", "dirname"},
		{"module path", "module example.com/acme/widgets\n", "widgets"},
		{"major version suffix", "module example.com/acme/widgets/v2\n\ngo 1.25\n", "widgets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "dirname")
			if err := os.Mkdir(dir, 0755); err != nil {
				t.Fatal(err)
			}
			if tt.gomod != "" {
				if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(tt.gomod), 0644); err != nil {
					t.Fatal(err)
				}
			}
			if got := defaultAppName(dir); got != tt.want {
				t.Errorf("defaultAppName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInitProject(t *testing.T) {
	for _, format := range []scene.Format{scene.FormatTOML, scene.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			dir := t.TempDir()
			created, err := initProject(dir, "demo", format, false)
			if err != nil {
				t.Fatalf("initProject failed: %v", err)
			}
			if len(created) != 2 {
				t.Errorf("created %v, want config and scene", created)
			}

			cfg, err := LoadConfig(dir)
			if err != nil {
				t.Fatal(err)
			}
			doc, err := scene.Load(filepath.Join(dir, cfg.Scene.Files[0]))
			if err != nil {
				t.Fatalf("starter scene does not load: %v", err)
			}
			if doc.Window.Title != "demo" {
				t.Errorf("Title = %q, want demo", doc.Window.Title)
			}

			if _, err := initProject(dir, "demo", format, false); err == nil {
				t.Error("second init without force should fail")
			}
			if _, err := initProject(dir, "demo", format, true); err != nil {
				t.Errorf("forced init failed: %v", err)
			}
		})
	}
}

func TestInitRejectsUnknownFormat(t *testing.T) {
	if _, err := initProject(t.TempDir(), "demo", scene.Format("json"), false); err == nil {
		t.Error("initProject accepted json")
	}
}

func TestRenderScenes(t *testing.T) {
	dir := t.TempDir()
	if _, err := initProject(dir, "demo", scene.FormatTOML, false); err != nil {
		t.Fatal(err)
	}
	second := starterScene("other")
	second.Pages = append(second.Pages, scene.Page{Name: "about"})
	if err := second.Save(filepath.Join(dir, "other.yaml")); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "build")
	files := []string{filepath.Join(dir, "scene.toml"), filepath.Join(dir, "other.yaml")}
	written, err := renderScenes(context.Background(), files, renderOptions{
		OutputDir: out,
		Width:     800,
		Jobs:      2,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("renderScenes failed: %v", err)
	}

	want := []string{"scene-main.png", "other-main.png", "other-about.png"}
	if len(written) != len(want) {
		t.Fatalf("wrote %v, want %v", written, want)
	}
	for i, name := range want {
		if filepath.Base(written[i]) != name {
			t.Errorf("written[%d] = %s, want %s", i, written[i], name)
		}
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestRenderScenesReportsBadFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[[pages]]\nname = \"p\"\n[[pages.widgets]]\nname = \"x\"\nkind = \"dial\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := renderScenes(context.Background(), []string{bad}, renderOptions{
		OutputDir: filepath.Join(dir, "out"),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err == nil || !strings.Contains(err.Error(), "bad.toml") {
		t.Errorf("error = %v, want it to name bad.toml", err)
	}
}

func TestRenderScenesRejectsSharedStem(t *testing.T) {
	dir := t.TempDir()
	files := []string{filepath.Join(dir, "a", "scene.toml"), filepath.Join(dir, "b", "scene.yaml")}
	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f), 0755); err != nil {
			t.Fatal(err)
		}
		if err := starterScene("demo").Save(f); err != nil {
			t.Fatal(err)
		}
	}

	out := filepath.Join(dir, "out")
	written, err := renderScenes(context.Background(), files, renderOptions{
		OutputDir: out,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err == nil || !strings.Contains(err.Error(), "scene-*.png") {
		t.Errorf("error = %v, want a shared output name error", err)
	}
	if len(written) != 0 {
		t.Errorf("wrote %v before rejecting the files", written)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output directory created: %v", err)
	}
}

func TestConvertScene(t *testing.T) {
	doc := starterScene("demo")
	dir := t.TempDir()

	path, err := convertScene(doc, scene.FormatYAML, filepath.Join(dir, "converted"))
	if err != nil {
		t.Fatalf("convertScene failed: %v", err)
	}
	if filepath.Base(path) != "converted.yaml" {
		t.Errorf("wrote %s, want converted.yaml", path)
	}
	got, err := scene.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Window.Title != "demo" {
		t.Errorf("Title = %q, want demo", got.Window.Title)
	}

	if _, err := convertScene(doc, scene.Format("json"), filepath.Join(dir, "x")); !errors.Is(err, scene.ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func TestPrintTree(t *testing.T) {
	doc := starterScene("demo")
	win, err := doc.NewWindow(nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	printTree(&buf, win)

	out := buf.String()
	for _, want := range []string{"PATH", "main/ok", "main/items", "static"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output missing %q:\n%s", want, out)
		}
	}
}
