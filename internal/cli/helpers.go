package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Global flags (set from the cmd package)
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

// Output streams; tests swap them
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

var (
	successMark = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	infoMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Render("ℹ")
	warningMark = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("⚠")
	errorMark   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}

// Quiet reports whether informational output is suppressed
func Quiet() bool {
	return quiet
}

// Confirm prompts the user for confirmation
func Confirm(prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}

	fmt.Fprint(stdout, prompt+suffix)

	reader := bufio.NewReader(stdin)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))

	if response == "" {
		return defaultYes, nil
	}

	return response == "y" || response == "yes", nil
}

func printLine(w io.Writer, mark, plain, msg string) {
	if noColor {
		fmt.Fprintf(w, "%s: %s\n", plain, msg)
		return
	}
	fmt.Fprintf(w, "%s %s\n", mark, msg)
}

// PrintSuccess prints a success message unless quiet mode is enabled
func PrintSuccess(format string, args ...interface{}) {
	if !quiet {
		printLine(stdout, successMark, "OK", fmt.Sprintf(format, args...))
	}
}

// PrintInfo prints an info message unless quiet mode is enabled
func PrintInfo(format string, args ...interface{}) {
	if !quiet {
		printLine(stdout, infoMark, "INFO", fmt.Sprintf(format, args...))
	}
}

// PrintWarning prints a warning message to stderr
func PrintWarning(format string, args ...interface{}) {
	printLine(stderr, warningMark, "WARNING", fmt.Sprintf(format, args...))
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	printLine(stderr, errorMark, "ERROR", fmt.Sprintf(format, args...))
}
