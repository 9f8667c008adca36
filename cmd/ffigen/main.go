package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/ffigen"
	"github.com/wippyai/ffigen/rewrite"
)

func main() {
	var (
		in          = flag.String("in", "", "Path to binding source file")
		write       = flag.Bool("write", false, "Rewrite the file in place")
		showDiff    = flag.Bool("diff", false, "Show a diff instead of the rewritten output")
		list        = flag.Bool("list", false, "List annotated declarations and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	defaults := loadDefaults()
	if defaults.Write {
		*write = true
	}

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Usage: ffigen -in <file> [-write | -diff]")
		fmt.Fprintln(os.Stderr, "       ffigen -in <file> -list")
		fmt.Fprintln(os.Stderr, "       ffigen -in <file> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			rewrite.SetLogger(logger)
			defer logger.Sync()
		}
	}

	if *interactive {
		if err := runInteractive(*in); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*in, *write, *showDiff, *list, defaults.Color); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, write, showDiff, listOnly bool, color string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	if listOnly {
		return listBindings(path, string(data))
	}

	out, err := ffigen.RewriteFile(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if showDiff {
		printDiff(string(data), string(out), color)
		return nil
	}

	if write {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat file: %w", err)
		}
		if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
		return nil
	}

	_, err = os.Stdout.Write(out)
	return err
}

func listBindings(path, src string) error {
	bindings, err := ffigen.Scan(src)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Printf("File: %s\n", path)
	fmt.Printf("Annotated declarations: %d\n\n", len(bindings))
	for _, b := range bindings {
		name := b.Fn.Name
		if b.Cfg.Name != nil {
			name = fmt.Sprintf("%s (as %q)", b.Fn.Name, *b.Cfg.Name)
		}
		fmt.Printf("  %s:%d  %-6s  abi=%s  %s\n", path, b.Line, b.Mode(), b.Cfg.ResolvedABI(), name)
	}
	return nil
}

// printDiff emits a character-level diff, colorized when stdout is a
// terminal (or forced by the color setting).
func printDiff(before, after, color string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	colorize := color == "always" ||
		(color != "never" && term.IsTerminal(int(os.Stdout.Fd())))
	if colorize {
		fmt.Print(dmp.DiffPrettyText(diffs))
		return
	}

	patches := dmp.PatchMake(before, diffs)
	fmt.Print(dmp.PatchToText(patches))
}
