//nolint:revive // Package name kept as "log" for stable internal imports.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	debugMode = false

	// output receives every message. Stdout carries converted data, so all
	// logging goes to stderr.
	output io.Writer = color.Error

	exit = os.Exit
)

// SetDebugMode enables or disables debug logging
func SetDebugMode(enabled bool) {
	debugMode = enabled
}

// DebugEnabled reports whether debug logging is on
func DebugEnabled() bool {
	return debugMode
}

// SetOutput redirects log output and returns the previous writer
func SetOutput(w io.Writer) io.Writer {
	prev := output
	output = w
	return prev
}

// SetExitFunc replaces the function Fatal exits through and returns the
// previous one
func SetExitFunc(fn func(int)) func(int) {
	prev := exit
	exit = fn
	return prev
}

// Debug logs debug messages when debug mode is enabled
func Debug(format string, elem ...any) {
	if debugMode {
		fmt.Fprintln(output, color.CyanString("[DEBUG] ")+fmt.Sprintf(format, elem...))
	}
}

// DebugH2 logs indented debug messages when debug mode is enabled
func DebugH2(format string, elem ...any) {
	if debugMode {
		fmt.Fprintln(output, color.CyanString("  [DEBUG] ")+fmt.Sprintf(format, elem...))
	}
}

// Info logs an informational message
func Info(format string, elem ...any) {
	fmt.Fprintln(output, color.BlueString("[x] ")+fmt.Sprintf(format, elem...))
}

// InfoH2 logs an indented informational message
func InfoH2(format string, elem ...any) {
	fmt.Fprintln(output, color.GreenString("  [x] ")+fmt.Sprintf(format, elem...))
}

// Warn logs a warning
func Warn(format string, elem ...any) {
	fmt.Fprintln(output, color.YellowString("[!] ")+fmt.Sprintf(format, elem...))
}

// Error logs an error message
func Error(format string, elem ...any) {
	fmt.Fprintln(output, color.RedString("[x] ")+fmt.Sprintf(format, elem...))
}

// ErrorH2 logs an indented error message
func ErrorH2(format string, elem ...any) {
	fmt.Fprintln(output, color.RedString("  [x] ")+fmt.Sprintf(format, elem...))
}

// Fatal logs an error message and exits the program with status 1
func Fatal(args ...interface{}) {
	var message string

	switch len(args) {
	case 0:
		message = "fatal error occurred"
	case 1:
		switch v := args[0].(type) {
		case error:
			message = v.Error()
		case string:
			message = v
		default:
			message = fmt.Sprintf("%v", v)
		}
	default:
		// If first argument is a string, use as format
		if format, ok := args[0].(string); ok {
			message = fmt.Sprintf(format, args[1:]...)
		} else {
			message = fmt.Sprint(args...)
		}
	}

	lines := strings.Split(strings.TrimSpace(message), "\n")
	for _, line := range lines {
		fmt.Fprintln(output, color.RedString("[x] ")+line)
	}
	exit(1)
}
