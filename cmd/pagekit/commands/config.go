package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFile is the project configuration file name.
const ConfigFile = "pagekit.toml"

// ProjectConfig represents the pagekit.toml configuration file
type ProjectConfig struct {
	App    AppConfig    `toml:"app"`
	Scene  SceneConfig  `toml:"scene"`
	Render RenderConfig `toml:"render"`
	Term   TermConfig   `toml:"term"`
}

type AppConfig struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
}

type SceneConfig struct {
	// Scene documents, relative to the project root
	Files []string `toml:"files"`
	// Page shown first; empty means the document's first page
	StartPage string `toml:"start_page"`
}

type RenderConfig struct {
	// Output directory for rendered PNGs
	OutputDir string `toml:"output_dir"`
	// Override the window size from the scene; zero keeps it
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Concurrent renders; zero means one per CPU
	Jobs int `toml:"jobs"`
}

type TermConfig struct {
	// Window units covered by one terminal cell
	CellWidth  float32 `toml:"cell_width"`
	CellHeight float32 `toml:"cell_height"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		App: AppConfig{
			Name:    "app",
			Version: "0.1.0",
		},
		Scene: SceneConfig{
			Files: []string{"scene.toml"},
		},
		Render: RenderConfig{
			OutputDir: "build",
		},
		Term: TermConfig{
			CellWidth:  8,
			CellHeight: 16,
		},
	}
}

// LoadConfig loads the project configuration from pagekit.toml in dir.
// If the file doesn't exist, returns default config
func LoadConfig(dir string) (ProjectConfig, error) {
	config := DefaultConfig()
	configPath := filepath.Join(dir, ConfigFile)

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	// Apply defaults for empty values
	d := DefaultConfig()
	if len(config.Scene.Files) == 0 {
		config.Scene.Files = d.Scene.Files
	}
	if config.Render.OutputDir == "" {
		config.Render.OutputDir = d.Render.OutputDir
	}
	if config.Term.CellWidth <= 0 {
		config.Term.CellWidth = d.Term.CellWidth
	}
	if config.Term.CellHeight <= 0 {
		config.Term.CellHeight = d.Term.CellHeight
	}

	return config, nil
}

// SaveConfig saves the configuration to pagekit.toml in dir
func SaveConfig(dir string, config ProjectConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ConfigFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ConfigFile, err)
	}

	return nil
}

// FindProjectRoot finds the project root by looking for pagekit.toml or go.mod
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFile)); err == nil {
			return dir, nil
		}
		// Check for go.mod as fallback
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a pagekit project (no %s or go.mod found)", ConfigFile)
		}
		dir = parent
	}
}

// projectFiles resolves scene files given on the command line, falling back
// to the project's configured scenes.
func projectFiles(root string, cfg ProjectConfig, args []string) []string {
	if len(args) > 0 {
		return args
	}
	files := make([]string, len(cfg.Scene.Files))
	for i, f := range cfg.Scene.Files {
		if filepath.IsAbs(f) {
			files[i] = f
		} else {
			files[i] = filepath.Join(root, f)
		}
	}
	return files
}

// loadProject finds the project root from the working directory and loads
// its configuration. Outside a project the defaults apply to the working
// directory.
func loadProject() (string, ProjectConfig, error) {
	root, err := FindProjectRoot(".")
	if err != nil {
		root, err = os.Getwd()
		if err != nil {
			return "", ProjectConfig{}, err
		}
	}
	cfg, err := LoadConfig(root)
	return root, cfg, err
}
