package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --out
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // comma-separated glob patterns
	IsDir    bool     // directory completion
}

// sourceGlob matches the documents accepted as positional argument.
const sourceGlob = "*.yaml,*.yml,*.json"

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"completion": {Values: []string{string(ShellBash), string(ShellZsh), string(ShellFish)}},
	"languages":  {Values: languageKeys()},

	// File flags with glob patterns
	"out":           {FileGlob: "*.html"},
	"config":        {FileGlob: "*.yaml,*.yml"},
	"customCssPath": {FileGlob: "*.css"},
	"customLogo":    {FileGlob: "*.png,*.jpg,*.jpeg,*.gif,*.svg,*.webp"},
	"includes":      {FileGlob: "*.md"},
	"resolve":       {FileGlob: sourceGlob},

	// Directory flags
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		if f.Value.Type() == "bool" {
			fd.Type = flagBool
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// completionFlags returns the command's flags, read from the live FlagSet.
func completionFlags() []flagDef {
	return extractFlagsFromFlagSet(newFlagSet(&cliOptions{}))
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch Shell(strings.ToLower(string(shell))) {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

func generateBash(w io.Writer) error {
	flags := completionFlags()

	var b strings.Builder
	fmt.Fprintf(&b, "# bash completion for %s\n", programName)
	fmt.Fprintf(&b, "_%s() {\n", programName)
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    case \"$prev\" in\n")
	for _, f := range flags {
		if f.Type == flagBool || f.Type == flagString {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n", bashFlagPattern(f))
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(f.Values, " "))
		case flagFile:
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -f -X '!@(%s)' -- \"$cur\"))\n", bashGlob(f.FileGlob))
		case flagDir:
			b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"))\n")
		}
		b.WriteString("            return\n            ;;\n")
	}
	b.WriteString("    esac\n\n")

	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(words, " "))
	b.WriteString("        return\n    fi\n")
	fmt.Fprintf(&b, "    COMPREPLY=($(compgen -f -X '!@(%s)' -- \"$cur\"))\n", bashGlob(sourceGlob))
	b.WriteString("}\n")
	b.WriteString("shopt -s extglob\n")
	fmt.Fprintf(&b, "complete -o filenames -o bashdefault -F _%s %s\n", programName, programName)

	_, err := io.WriteString(w, b.String())
	return err
}

func bashFlagPattern(f flagDef) string {
	if f.Short != "" {
		return "-" + f.Short + "|--" + f.Long
	}
	return "--" + f.Long
}

// bashGlob turns "*.yaml,*.yml" into the extglob list "*.yaml|*.yml".
func bashGlob(globs string) string {
	return strings.ReplaceAll(globs, ",", "|")
}

func generateZsh(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "#compdef %s\n\n", programName)
	fmt.Fprintf(&b, "_%s() {\n", programName)
	b.WriteString("    _arguments -s \\\n")
	for _, f := range completionFlags() {
		desc := zshEscape(f.Desc)
		action := zshAction(f)
		if f.Short != "" {
			fmt.Fprintf(&b, "        '(-%s --%s)'{-%s,--%s}'[%s]%s' \\\n", f.Short, f.Long, f.Short, f.Long, desc, action)
		} else {
			fmt.Fprintf(&b, "        '--%s[%s]%s' \\\n", f.Long, desc, action)
		}
	}
	fmt.Fprintf(&b, "        '1:source:_files -g \"%s\"'\n", zshGlob(sourceGlob))
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "compdef _%s %s\n", programName, programName)

	_, err := io.WriteString(w, b.String())
	return err
}

func zshAction(f flagDef) string {
	switch f.Type {
	case flagEnum:
		return ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		return ":file:_files -g \"" + zshGlob(f.FileGlob) + "\""
	case flagDir:
		return ":directory:_files -/"
	case flagString:
		return ":value:"
	default:
		return ""
	}
}

// zshGlob turns "*.yaml,*.yml" into "*.(yaml|yml)" style alternatives.
func zshGlob(globs string) string {
	parts := strings.Split(globs, ",")
	if len(parts) == 1 {
		return parts[0]
	}
	exts := make([]string, len(parts))
	for i, p := range parts {
		exts[i] = strings.TrimPrefix(p, "*.")
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

func zshEscape(s string) string {
	s = strings.ReplaceAll(s, "'", "'\\''")
	s = strings.ReplaceAll(s, "[", "\\[")
	return strings.ReplaceAll(s, "]", "\\]")
}

func generateFish(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# fish completion for %s\n", programName)
	fmt.Fprintf(&b, "complete -c %s -f\n", programName)
	for _, f := range completionFlags() {
		line := fmt.Sprintf("complete -c %s -l %s", programName, f.Long)
		if f.Short != "" {
			line += " -s " + f.Short
		}
		switch f.Type {
		case flagEnum:
			line += fmt.Sprintf(" -x -a %q", strings.Join(f.Values, " "))
		case flagFile, flagDir:
			line += " -r -F"
		case flagString:
			line += " -r"
		}
		line += fmt.Sprintf(" -d %q", f.Desc)
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "complete -c %s -k -a '(__fish_complete_suffix .yaml .yml .json)'\n", programName)

	_, err := io.WriteString(w, b.String())
	return err
}
