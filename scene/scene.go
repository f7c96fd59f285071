// Package scene loads window layouts from TOML or YAML documents and builds
// them into a retained.Window.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/agiangrant/pagekit/geom"
	"github.com/agiangrant/pagekit/retained"
)

var (
	// ErrUnknownFormat is returned for documents that are neither TOML nor YAML.
	ErrUnknownFormat = errors.New("scene: unknown document format")
	// ErrUnknownKind is returned for widgets of an unsupported kind.
	ErrUnknownKind = errors.New("scene: unknown widget kind")
)

// Format identifies a document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Filters lists the scene formats in the order save dialogs offer them.
var Filters = []retained.FileFilter{
	{Name: "TOML scene", Extensions: []string{"toml"}},
	{Name: "YAML scene", Extensions: []string{"yaml", "yml"}},
}

// FilterFor returns the 1-based position of format in Filters, the way a
// native dialog reports the picked filter, or 0 if no filter matches.
func FilterFor(format Format) int {
	for i, f := range Filters {
		for _, ext := range f.Extensions {
			if ext == string(format) {
				return i + 1
			}
		}
	}
	return 0
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// Document describes one window.
type Document struct {
	Window retained.WindowConfig `toml:"window" yaml:"window"`
	Pages  []Page                `toml:"pages" yaml:"pages"`
}

// Page is a top-level page.
type Page struct {
	Name    string    `toml:"name" yaml:"name"`
	MinRect []float32 `toml:"min_rect,omitempty" yaml:"min_rect,omitempty"`
	Widgets []Widget  `toml:"widgets,omitempty" yaml:"widgets,omitempty"`
}

// Widget is one widget. Which fields apply depends on Kind: panes carry
// Widgets, tab controls carry Tabs, groups carry Members and Margin, lists
// carry Items.
type Widget struct {
	Name string              `toml:"name" yaml:"name"`
	Kind retained.WidgetKind `toml:"kind" yaml:"kind"`
	Text string              `toml:"text,omitempty" yaml:"text,omitempty"`

	// Rect is [left, top, right, bottom] relative to the page.
	Rect   []float32         `toml:"rect,omitempty" yaml:"rect,omitempty"`
	Resize geom.ResizePolicy `toml:"resize,omitempty" yaml:"resize,omitempty"`
	Style  retained.Style    `toml:"style,omitempty" yaml:"style,omitempty"`

	Hidden   bool `toml:"hidden,omitempty" yaml:"hidden,omitempty"`
	Disabled bool `toml:"disabled,omitempty" yaml:"disabled,omitempty"`

	Items   []string `toml:"items,omitempty" yaml:"items,omitempty"`
	On      bool     `toml:"on,omitempty" yaml:"on,omitempty"`
	Members []string `toml:"members,omitempty" yaml:"members,omitempty"`
	Margin  float32  `toml:"margin,omitempty" yaml:"margin,omitempty"`

	Widgets []Widget `toml:"widgets,omitempty" yaml:"widgets,omitempty"`
	Tabs    []Tab    `toml:"tabs,omitempty" yaml:"tabs,omitempty"`
}

// Tab is one page of a tab control.
type Tab struct {
	Name    string   `toml:"name" yaml:"name"`
	Widgets []Widget `toml:"widgets,omitempty" yaml:"widgets,omitempty"`
}

// Parse decodes a document. Unknown keys are errors. Window settings the
// document leaves out keep their defaults.
func Parse(data []byte, format Format) (*Document, error) {
	doc := &Document{Window: retained.DefaultWindowConfig()}
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(doc); err != nil {
			return nil, fmt.Errorf("failed to parse toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Load reads and parses the document at path, choosing the decoder by
// extension.
func Load(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Marshal encodes the document.
func (d *Document) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(d)
	case FormatYAML:
		return yaml.Marshal(d)
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
}

// Save writes the document to path in the format its extension names.
func (d *Document) Save(path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := d.Marshal(format)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// SaveAs writes the document the way a save dialog result asks: filter is
// the 1-based index of the picked entry of Filters, and a path without an
// extension gets that filter's default one. It returns the path written.
func (d *Document) SaveAs(path string, filter int) (string, error) {
	if filepath.Ext(path) == "" {
		if ext := retained.FilterExtension(Filters, filter); ext != "" {
			path += "." + ext
		}
	}
	return path, d.Save(path)
}
