package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of a message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Details      []string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

type levelStyle struct {
	symbol string
	attr   color.Attribute
}

var levelStyles = map[ErrorLevel]levelStyle{
	ErrorLevelError:   {"✗", color.FgRed},
	ErrorLevelWarning: {"!", color.FgYellow},
	ErrorLevelInfo:    {"i", color.FgCyan},
}

// FormatError renders a message block:
//
//	✗ ENUM NOT FOUND: Cannot find enumeration 'order:stauts'.
//	   1. detail
//
//	   Did you mean: order:status?
//
//	   → List enumerations: adb enums list
func FormatError(opts ErrorOptions) string {
	style, ok := levelStyles[opts.Level]
	if !ok {
		style = levelStyles[ErrorLevelError]
	}
	header := newColor(opts.NoColor, style.attr, color.Bold)
	body := newColor(opts.NoColor, style.attr)

	var b strings.Builder
	if opts.Context != "" {
		header.Fprintf(&b, "%s %s: %s\n", style.symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		header.Fprintf(&b, "%s %s\n", style.symbol, opts.Problem)
	}

	for i, d := range opts.Details {
		body.Fprintf(&b, "   %d. %s\n", i+1, d)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		newColor(opts.NoColor, color.FgYellow).Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := newColor(opts.NoColor, color.FgCyan)
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	return newColor(noColor, color.FgGreen, color.Bold).Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// EnumNotFoundError reports an unknown enumeration id or code
func EnumNotFoundError(ref string, candidates []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "ENUM NOT FOUND",
		Problem:     fmt.Sprintf("Cannot find enumeration '%s'.", ref),
		Suggestions: FindSimilar(ref, candidates, nil),
		HelpCommands: []string{
			"List enumerations: adb enums list",
		},
		NoColor: noColor,
	})
}

// EntityNotFoundError reports an unknown entity code
func EntityNotFoundError(ref string, candidates []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "ENTITY NOT FOUND",
		Problem:     fmt.Sprintf("Cannot find entity '%s'.", ref),
		Suggestions: FindSimilar(ref, candidates, nil),
		HelpCommands: []string{
			"Validate definitions: adb validate",
		},
		NoColor: noColor,
	})
}

// ValidationError reports the numbered errors of one descriptor
func ValidationError(subject string, errs []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "INVALID",
		Problem: subject,
		Details: errs,
		NoColor: noColor,
	})
}

// ConfigError creates a standardized configuration error
func ConfigError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "CONFIGURATION ERROR",
		Problem: message,
		HelpCommands: []string{
			"View config: cat adb.yaml",
			"Get help: adb --help",
		},
		NoColor: noColor,
	})
}

// Warning creates a standardized warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{Level: ErrorLevelWarning, Problem: message, NoColor: noColor})
}
