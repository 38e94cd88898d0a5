package printer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/dyluth/retro/pkg/retro"
	"github.com/fatih/color"
	"golang.org/x/term"
)

func init() {
	// Force color output even when not connected to TTY
	// Users can disable with NO_COLOR environment variable
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	// Color definitions
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	bold   = color.New(color.Bold)
	faint  = color.New(color.Faint)
)

// Success prints a success message in green with a checkmark prefix
func Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		green.Printf("✓ %s", msg)
	} else {
		green.Print(msg)
	}
}

// Info prints an informational message in the default color
func Info(format string, a ...any) {
	fmt.Printf(format, a...)
}

// Warning prints a warning message in yellow with a warning emoji prefix
func Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		yellow.Printf("⚠️  %s", msg)
	} else {
		yellow.Print(msg)
	}
}

// Error prints title, explanation and suggestions to stderr and returns an
// error carrying only the title. Cobra doesn't print it (SilenceErrors).
func Error(title string, explanation string, suggestions []string) error {
	return ErrorWithContext(title, explanation, nil, suggestions)
}

// ErrorWithContext is Error with a block of key/value details, printed in
// key order between the explanation and the suggestions.
func ErrorWithContext(title string, explanation string, context map[string]string, suggestions []string) error {
	red.Fprintf(os.Stderr, "%s\n\n", title)

	if explanation != "" {
		fmt.Fprintf(os.Stderr, "%s\n", explanation)
	}

	if len(context) > 0 {
		keys := make([]string, 0, len(context))
		for key := range context {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		fmt.Fprintf(os.Stderr, "\n")
		for _, key := range keys {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", key, context[key])
		}
	}

	printSuggestions(os.Stderr, suggestions)

	return fmt.Errorf("%s", title)
}

func printSuggestions(w io.Writer, suggestions []string) {
	switch len(suggestions) {
	case 0:
	case 1:
		fmt.Fprintf(w, "\n%s\n", suggestions[0])
	default:
		fmt.Fprintf(w, "\nEither:\n")
		for i, suggestion := range suggestions {
			fmt.Fprintf(w, "  %d. %s\n", i+1, suggestion)
		}
	}
}

// Step prints a step message with emphasis (used in multi-step operations)
func Step(format string, a ...any) {
	cyan.Printf("→ %s", fmt.Sprintf(format, a...))
}

// Idea prints one board line: id, category, body and flags.
// Highlighted ideas are printed in bold, locked ones faint.
func Idea(idea retro.Idea, controls []string) {
	category := string(idea.Category)
	if category == "" {
		category = "-"
	}

	var flags []string
	if idea.IsHighlighted {
		flags = append(flags, "highlighted")
	}
	if idea.InEditState {
		flags = append(flags, "editing")
	}
	if idea.DeletionSubmitted {
		flags = append(flags, "deleting")
	}

	line := fmt.Sprintf("#%-4d %-9s %s", idea.ID, category, idea.Body)
	if len(flags) > 0 {
		line += fmt.Sprintf(" [%s]", strings.Join(flags, ", "))
	}

	switch {
	case idea.IsHighlighted:
		bold.Println(line)
	case idea.InEditState || idea.DeletionSubmitted:
		faint.Println(line)
	default:
		fmt.Println(line)
	}

	if len(controls) > 0 {
		fmt.Printf("      controls: %s\n", strings.Join(controls, ", "))
	}
}

// Prompt returns a confirmation func that asks on out and reads one answer
// line from in. Only "y" or "yes" confirm; EOF counts as declined.
func Prompt(in io.Reader, out io.Writer) func(message string) bool {
	reader := bufio.NewReader(in)
	return func(message string) bool {
		yellow.Fprintf(out, "%s [y/N]: ", message)
		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			fmt.Fprintln(out)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}

// TerminalConfirm returns the confirmation func used by the CLI.
// assumeYes skips the prompt. Without a terminal on stdin nobody can answer,
// so the prompt is treated as dismissed.
func TerminalConfirm(assumeYes bool) func(message string) bool {
	if assumeYes {
		return func(string) bool { return true }
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return func(message string) bool {
			Warning("%s (no terminal, treating as declined)\n", message)
			return false
		}
	}
	return Prompt(os.Stdin, os.Stdout)
}

// Println prints a plain message (for output that doesn't need coloring)
func Println(a ...any) {
	fmt.Println(a...)
}

// Printf prints a plain formatted message (for output that doesn't need coloring)
func Printf(format string, a ...any) {
	fmt.Printf(format, a...)
}
