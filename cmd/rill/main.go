package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"rill/interpreter-go/pkg/ast"
	"rill/interpreter-go/pkg/driver"
	"rill/interpreter-go/pkg/interpreter"
	"rill/interpreter-go/pkg/runtime"
)

const cliToolVersion = "rill-cli 0.0.0-dev"

const historyFile = ".rill_history"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:])
	case "deps":
		return runDeps(args[1:])
	case "repl":
		return runRepl(args[1:])
	default:
		return runEntry(args)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage:
  rill run [module.json | program.yml]   execute a serialized module
  rill deps [program.yml]                fetch manifest dependencies
  rill repl                              interactive session over JSON nodes
  rill version`)
}

func runEntry(args []string) int {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	candidate := "program.yml"
	if len(args) == 1 {
		candidate = args[0]
	}

	entryPath := candidate
	if isManifestPath(candidate) {
		manifest, err := driver.LoadManifest(candidate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return 1
		}
		entryPath = manifest.EntryPath()
	}

	module, err := driver.LoadModule(entryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	interp := interpreter.New()
	if err := interp.EvaluateModule(module); err != nil {
		reportRuntimeError(os.Stderr, err)
		return 1
	}
	return 0
}

func isManifestPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}

func runDeps(args []string) int {
	manifestPath := "program.yml"
	if len(args) >= 1 {
		manifestPath = args[0]
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		return 1
	}
	if len(manifest.Dependencies) == 0 {
		fmt.Fprintln(os.Stdout, "no dependencies")
		return 0
	}

	cacheDir := os.Getenv("RILL_CACHE")
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot determine cache directory: %v\n", err)
			return 1
		}
		cacheDir = filepath.Join(home, ".rill", "deps")
	}

	locked, err := driver.FetchDependencies(manifest, cacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	for _, dep := range locked {
		if dep.Commit != "" {
			fmt.Fprintf(os.Stdout, "%s %s (%s)\n", dep.Name, dep.Commit, dep.Source)
		} else {
			fmt.Fprintf(os.Stdout, "%s (%s)\n", dep.Name, dep.Source)
		}
	}
	return 0
}

// runRepl reads one JSON-serialized node per prompt and evaluates it against
// a persistent state. The parser front end lives outside this runtime, so
// the session speaks the same serialized-tree format as `rill run`.
func runRepl(_ []string) int {
	fmt.Println(cliToolVersion)
	fmt.Println(`enter a JSON node per line; :state dumps variables, :quit exits`)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	interp := interpreter.New()

	for {
		line, err := ln.Prompt("rill> ")
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return 0
			case ":state":
				dumpState(interp.State())
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		node, err := ast.DecodeNode([]byte(trimmed))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		stmt, ok := node.(ast.Statement)
		if !ok {
			fmt.Fprintf(os.Stderr, "%s is not executable\n", node.NodeType())
			continue
		}

		val, err := interp.EvaluateStatement(stmt)
		if err != nil {
			reportRuntimeError(os.Stderr, err)
			continue
		}
		fmt.Println(runtime.FormatValue(val))
		ln.AppendHistory(trimmed)
	}
}

func dumpState(st runtime.State) {
	fmt.Println("-- variables --")
	for _, v := range st.Variables() {
		fmt.Println(v.String())
	}
}

func reportRuntimeError(out io.Writer, err error) {
	fmt.Fprintf(out, "error: %v\n", err)
}
