// Command cc is the CLI front end: `help`, `version`, and
// `compile` (the default when the first argument is not a recognized
// command) subcommands, long-form flags, and an `--option-file`
// pre-parsing pass.
//
// One flag.FlagSet per subcommand (ContinueOnError, output discarded,
// a hand-written Usage func), os.Args[1] mode dispatch with a default
// fallthrough to the main command, and an exit(code, err) helper.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/accc-project/accc/cc"
)

const version = "accc 0.1.0"

var t2s = strings.NewReplacer("\t", " ")

func usage() {
	fmt.Fprint(os.Stderr, t2s.Replace(`
Usage: cc [help|version|compile] [options...] <file>...

 compile (default command):

	--colored-output enable ANSI coloring of diagnostics (default on)
	--debug-parser enable parser tracing
	--display-surrounding-lines include surrounding source context in diagnostics (default on)
	--output-extension <ext> suffix for emitted C files (default ".g.c")
	--parse-only stop after parsing; emit no output
	--preprocess stop after preprocessing; emit the token stream as text
	--preserve-comment accepted; preprocessed output never contains comments
	--reject-hex-float treat hex-float literals as errors (checked in --preprocess mode only)
	--system-include <dir> append to system include path list
	--user-include <dir> append to user include path list
	--option-file <path> read additional flags from <path>, one per line

 help: show this message
 version: show the version string

`))
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "help", "-h", "-help", "--help":
		usage()
		os.Exit(0)
	case "version":
		fmt.Println(version)
		os.Exit(0)
	case "compile":
		compile(os.Args[2:])
	default:
		compile(os.Args[1:])
	}
}

// stringListFlag implements flag.Value for repeatable `--flag <value>`
// options.
type stringListFlag []string

func (s *stringListFlag) String() string { return strings.Join(*s, ",") }
func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func newFlagSet(mode string) *flag.FlagSet {
	fs := flag.NewFlagSet("cc "+mode, flag.ContinueOnError)
	fs.Usage = usage
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		exit(2, err)
	}
}

func compile(args []string) {
	fs := newFlagSet("compile")
	colored := fs.Bool("colored-output", true, "")
	debugParser := fs.Bool("debug-parser", false, "")
	surroundingLines := fs.Bool("display-surrounding-lines", true, "")
	outputExt := fs.String("output-extension", ".g.c", "")
	parseOnly := fs.Bool("parse-only", false, "")
	preprocessOnly := fs.Bool("preprocess", false, "")
	preserveComment := fs.Bool("preserve-comment", false, "")
	rejectHexFloat := fs.Bool("reject-hex-float", false, "")
	var systemIncludes, userIncludes stringListFlag
	fs.Var(&systemIncludes, "system-include", "")
	fs.Var(&userIncludes, "user-include", "")

	parseFlags(fs, applyOptionFile(fs, args))

	if fs.NArg() == 0 {
		exit(2, fmt.Errorf("need at least one file name argument"))
	}

	c := cc.NewCompiler(nil)
	c.SetColoredOutput(*colored)
	c.SetDebugParser(*debugParser)
	c.SetRejectHexFloat(*rejectHexFloat)
	c.SetPreserveComment(*preserveComment)
	c.SetOutputExtension(*outputExt)
	if *surroundingLines {
		c.SetDisplaySurroundingLines(1)
	} else {
		c.SetDisplaySurroundingLines(0)
	}
	for _, dir := range systemIncludes {
		c.AddSystemIncludeDir(dir)
	}
	for _, dir := range userIncludes {
		c.AddUserIncludeDir(dir)
	}

	for _, arg := range fs.Args() {
		content, err := readInput(arg)
		if err != nil {
			exit(1, err)
		}

		if *preprocessOnly {
			unit := c.Preprocess(arg, string(content))
			if unit != nil {
				fmt.Fprintln(os.Stdout, unit.Preprocessed)
			}
			continue
		}

		unit := c.CompileString(arg, string(content))
		if *parseOnly || unit == nil || unit.TopLevel == nil {
			continue
		}

		outPath := strings.TrimSuffix(arg, filepath.Ext(arg)) + c.OutputExtension()
		out, err := os.Create(outPath)
		if err != nil {
			exit(1, err)
		}
		err = c.Emit(out, unit.TopLevel)
		out.Close()
		if err != nil {
			exit(1, err)
		}
	}

	for _, msg := range c.FormatDiagnostics() {
		fmt.Fprintln(os.Stderr, msg)
	}
	if c.Failed() {
		os.Exit(1)
	}
}

// applyOptionFile implements `--option-file <path>`: flags
// read from the file are applied first, then the remaining
// command-line flags parse after them and so override any repeated
// name. Only one --option-file is honored per invocation.
func applyOptionFile(fs *flag.FlagSet, args []string) []string {
	path, rest := extractOptionFile(args)
	if path == "" {
		return rest
	}
	fileArgs, err := readOptionFile(path)
	if err != nil {
		exit(1, err)
	}
	return append(fileArgs, rest...)
}

func extractOptionFile(args []string) (path string, rest []string) {
	for i, a := range args {
		switch {
		case a == "--option-file" && i+1 < len(args):
			rest = append(append([]string{}, args[:i]...), args[i+2:]...)
			return args[i+1], rest
		case strings.HasPrefix(a, "--option-file="):
			rest = append(append([]string{}, args[:i]...), args[i+1:]...)
			return strings.TrimPrefix(a, "--option-file="), rest
		}
	}
	return "", args
}

// readOptionFile reads one flag (optionally with its value) per line;
// blank lines and lines starting with `#` are ignored.
func readOptionFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, strings.Fields(line)...)
	}
	return out, scanner.Err()
}

const inputLimit = 10 * 1024 * 1024

func readInput(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(io.LimitReader(os.Stdin, inputLimit))
	}
	return os.ReadFile(arg)
}

func exit(code int, err error) {
	if err == nil || err == flag.ErrHelp {
		os.Exit(0)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(code)
}
