package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/peterh/liner"

	grass "github.com/jdato/grass"
)

const (
	appName     = "grass"
	historyFile = ".grass_history"
	promptMain  = ">> "
)

var banner = fmt.Sprintf("grass %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", grass.Version)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "compile":
		os.Exit(cmdCompile(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(grass.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`grass %s

Usage:
  %s compile [-o <file.css>] <file.scss|glob> ...   Compile stylesheets (use - for stdin).
  %s repl                                           Start the expression REPL.
  %s version                                        Print the compiled version

Globs support ** via doublestar, e.g. 'styles/**/*.scss'.

`, grass.Version, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// compile
// -----------------------------------------------------------------------------

func cmdCompile(args []string) int {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	out := fs.String("o", "", "write output to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	patterns := fs.Args()
	if len(patterns) == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s compile [-o <file.css>] <file.scss|glob> ...\n", appName)
		return 2
	}

	files, readStdin, err := expandPatterns(patterns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	var b strings.Builder
	if readStdin {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot read stdin: %v\n", appName, err)
			return 1
		}
		css, cerr := grass.Compile(string(src))
		if cerr != nil {
			fmt.Fprintln(os.Stderr, red(grass.WrapErrorWithName(cerr, "stdin", string(src)).Error()))
			return 1
		}
		b.WriteString(css)
	}

	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, f, err)
			return 1
		}
		css, cerr := grass.Compile(string(src))
		if cerr != nil {
			fmt.Fprintln(os.Stderr, red(grass.WrapErrorWithName(cerr, f, string(src)).Error()))
			return 1
		}
		if b.Len() > 0 && css != "" {
			b.WriteString("\n")
		}
		b.WriteString(css)
	}

	if *out == "" {
		fmt.Print(b.String())
		return 0
	}
	if err := os.WriteFile(*out, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot write %s: %v\n", appName, *out, err)
		return 1
	}
	return 0
}

// expandPatterns resolves each argument: "-" selects stdin, existing paths
// pass through, anything else is tried as a doublestar glob.
func expandPatterns(patterns []string) (files []string, readStdin bool, err error) {
	for _, p := range patterns {
		if p == "-" {
			readStdin = true
			continue
		}
		if _, statErr := os.Stat(p); statErr == nil {
			files = append(files, p)
			continue
		}
		matches, globErr := doublestar.FilepathGlob(p)
		if globErr != nil {
			return nil, false, fmt.Errorf("bad pattern %q: %v", p, globErr)
		}
		if len(matches) == 0 {
			return nil, false, fmt.Errorf("no files match %q", p)
		}
		files = append(files, matches...)
	}
	return files, readStdin, nil
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

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

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	session := grass.NewSession()

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			continue
		}

		code := strings.TrimSpace(line)
		if code == "" {
			continue
		}
		if strings.HasPrefix(code, ":") {
			switch strings.ToLower(code) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		out, evalErr := session.Eval(code)
		if evalErr != nil {
			fmt.Fprintln(os.Stderr, red(grass.WrapErrorWithSource(evalErr, code).Error()))
			continue
		}
		if out != "" {
			fmt.Println(out)
		}
		ln.AppendHistory(line)
	}
}
