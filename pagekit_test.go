package pagekit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agiangrant/pagekit/internal/raster"
)

const dialog = `
[window]
title = "Dialog"
width = 300
height = 200
chrome = false

[[pages]]
name = "main"

[[pages.widgets]]
name = "ok"
kind = "button"
text = "OK"
rect = [200, 150, 280, 180]
`

func TestOpenAndSavePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dialog.toml")
	if err := os.WriteFile(path, []byte(dialog), 0644); err != nil {
		t.Fatal(err)
	}

	win, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, ok := win.Find("main/ok"); !ok {
		t.Fatal("main/ok not built")
	}

	out := filepath.Join(dir, "dialog.png")
	if err := SavePNG(win, out); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Errorf("dialog.png not written: %v", err)
	}
	if win.Created() {
		t.Error("SavePNG should close the window again")
	}
}

func TestSavePNGRefusesCreatedWindow(t *testing.T) {
	win := NewWindow(nil, DefaultWindowConfig())
	win.AddPage("main")
	if err := SavePNG(win, filepath.Join(t.TempDir(), "a.png")); err != nil {
		t.Fatal(err)
	}
	if err := win.Create(raster.New(10, 10, nil), nil); err != nil {
		t.Fatal(err)
	}
	defer win.Close()
	if err := SavePNG(win, filepath.Join(t.TempDir(), "b.png")); err == nil {
		t.Error("SavePNG painted a window that already has a renderer")
	}
}
