package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"loxscript/lox"
)

// sysexits-style codes: static (parse/resolve) errors are data errors,
// runtime errors are software errors.
const (
	exitUsage   = 64
	exitStatic  = 65
	exitRuntime = 70
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var cliErr *cliError
	if errors.As(err, &cliErr) {
		return cliErr.code
	}
	return 1
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "repl":
		return runREPL()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	checkOnly := fs.Bool("check", false, "only parse and resolve the script without executing")
	if err := fs.Parse(args); err != nil {
		return &cliError{code: exitUsage, err: err}
	}
	remaining := fs.Args()
	if len(remaining) != 1 {
		return &cliError{code: exitUsage, err: errors.New("lox run: script path required")}
	}
	scriptPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	statements, err := lox.Compile(string(input))
	if err != nil {
		return &cliError{code: exitStatic, err: err}
	}
	locals, resolveErrs := lox.Resolve(statements)
	if len(resolveErrs) > 0 {
		errs := make([]error, len(resolveErrs))
		for i, resolveErr := range resolveErrs {
			errs[i] = resolveErr
		}
		return &cliError{code: exitStatic, err: errors.Join(errs...)}
	}
	if *checkOnly {
		return nil
	}

	interp := lox.NewInterpreter(lox.Options{})
	if _, err := interp.Interpret(statements, locals); err != nil {
		return &cliError{code: exitRuntime, err: err}
	}
	return nil
}

func usageError() error {
	printUsage()
	return &cliError{code: exitUsage, err: errors.New("invalid command")}
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command>\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [-check] <script>")
	fmt.Fprintln(os.Stderr, "    execute a script (-check stops after parse and resolve)")
	fmt.Fprintln(os.Stderr, "  repl")
	fmt.Fprintln(os.Stderr, "    start the interactive prompt")
	fmt.Fprintln(os.Stderr, "  help")
	fmt.Fprintln(os.Stderr, "    show this message")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
