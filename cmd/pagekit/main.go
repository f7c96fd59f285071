package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/pagekit/cmd/pagekit/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "init":
		err = commands.Init(args)
	case "render":
		err = commands.Render(args)
	case "inspect":
		err = commands.Inspect(args)
	case "run":
		err = commands.Run(args)
	case "version", "-v", "--version":
		fmt.Printf("pagekit version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pagekit - retained-mode widget toolkit CLI

Usage: pagekit <command> [options] [scene files]

Commands:
  init            Create pagekit.toml and a starter scene
  render          Render every page of each scene to PNG
  inspect         Print the laid-out widget tree of each scene
  run             Run a scene in the terminal
  version         Print version information
  help            Show this help message

Examples:
  pagekit init --format yaml          Start a project with a YAML scene
  pagekit render -w 1024 -h 768       Render at a different window size
  pagekit inspect -convert yaml a.toml  Print a.toml as YAML
  pagekit run --page settings         Start on the settings page

Configuration:
  Projects are configured via pagekit.toml in the project root.
  Scene files are TOML or YAML, chosen by extension.`)
}
