// menukit-export - Serve a menu definition over D-Bus
//
//	menukit-export validate <file>  Check a menu definition file
//	menukit-export show <file>      Print the menu tree a definition builds
//	menukit-export serve            Export the configured menu on the session bus
package main

import (
	"fmt"
	"os"
	"strings"

	"menukit/internal/definition"
	"menukit/internal/menu"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]

	switch cmd {
	case "validate":
		cmdValidate()
	case "show":
		cmdShow()
	case "serve":
		cmdServe()
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`menukit-export - Menu definition exporter

USAGE:
    menukit-export <command> [options]

COMMANDS:
    validate <file>     Parse and validate a menu definition (.json, .toml, .yaml)
    show <file>         Build the menu from a definition and print the tree
    serve               Export the configured menu over the session bus
    help                Show this help message

SERVE OPTIONS:
    -config <path>      Configuration file (default: platform config dir)

The serve command claims the configured bus name, exports the menu with
the com.canonical.dbusmenu protocol, rebuilds it when the definition file
changes, and persists item state across runs.`)
}

func cmdValidate() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: menukit-export validate <file>")
		os.Exit(1)
	}
	path := os.Args[2]

	def, err := definition.Parse(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: %q with %d top-level items\n", def.Title, len(def.Items))
}

func cmdShow() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: menukit-export show <file>")
		os.Exit(1)
	}
	path := os.Args[2]

	def, err := definition.Parse(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
		os.Exit(1)
	}
	m, err := definition.Build(def, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Build failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(m.Title())
	printItems(m, 1)
}

func printItems(m *menu.Menu, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, it := range m.Items() {
		if it.IsSeparator() {
			fmt.Printf("%s----\n", indent)
			continue
		}
		line := indent + it.Title()
		if key := it.KeyEquivalentDisplay(); key != "" {
			line += "  [" + key + "]"
		}
		if it.State() != menu.StateOff {
			line += "  (" + it.State().String() + ")"
		}
		if !it.IsEnabled() {
			line += "  (disabled)"
		}
		fmt.Println(line)
		if sub := it.Submenu(); sub != nil {
			printItems(sub, depth+1)
		}
	}
}
