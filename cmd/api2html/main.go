package main

import (
	"context"
	"os"
)

// programName is the command name shown in help and completion scripts.
const programName = "api2html"

// defaultTheme is the highlight theme used when none is configured.
const defaultTheme = "darkula"

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain runs the command and maps the outcome to an exit code. Failures
// are printed with a ✗ marker.
func runMain(ctx context.Context, args []string, env *Environment) int {
	err := run(ctx, args, env)
	if err != nil {
		newReporter(env, false, hasVerboseFlag(args)).failure(err)
	}
	return exitCodeFor(err)
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "-v", "--verbose":
			return true
		}
	}
	return false
}
