package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Output mode shared by every command, set once from the root command's
// persistent flags before any RunE executes.
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

// SetGlobalFlags wires the root command's --quiet, --no-color and --yes
// flags into the printers and Confirm.
func SetGlobalFlags(q, nc, yes bool) {
	quiet = q
	noColor = nc
	skipConfirm = yes
}

// Confirm asks the user a yes/no question on stdin. --yes answers every
// prompt affirmatively; a closed stdin counts as a decline so piped
// invocations never save by accident.
func Confirm(prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}
	fmt.Print(prompt + suffix)

	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return false, err
		}
		fmt.Println()
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PrintSuccess reports a completed action on stdout. Silenced by --quiet.
func PrintSuccess(format string, args ...any) {
	if !quiet {
		tagged(os.Stdout, "✓", "OK", format, args...)
	}
}

// PrintInfo reports progress on stdout. Silenced by --quiet.
func PrintInfo(format string, args ...any) {
	if !quiet {
		tagged(os.Stdout, "ℹ", "INFO", format, args...)
	}
}

// PrintWarning goes to stderr and is never silenced.
func PrintWarning(format string, args ...any) {
	tagged(os.Stderr, "⚠", "WARNING", format, args...)
}

// PrintError goes to stderr and is never silenced.
func PrintError(format string, args ...any) {
	tagged(os.Stderr, "✗", "ERROR", format, args...)
}

func tagged(w io.Writer, glyph, plain string, format string, args ...any) {
	tag := glyph
	if noColor {
		tag = plain + ":"
	}
	fmt.Fprintf(w, "%s %s\n", tag, fmt.Sprintf(format, args...))
}
