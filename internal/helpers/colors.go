package helpers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"uml-generator/internal/models"
)

var (
	// SuccessColor for successful operations
	SuccessColor = color.New(color.FgGreen, color.Bold)

	// ErrorColor for error messages
	ErrorColor = color.New(color.FgRed, color.Bold)

	// WarningColor for warning messages
	WarningColor = color.New(color.FgYellow, color.Bold)

	// InfoColor for informational messages
	InfoColor = color.New(color.FgCyan, color.Bold)

	// TitleColor for titles and headers
	TitleColor = color.New(color.FgMagenta, color.Bold)

	// MarkupColor for emitted PlantUML text
	MarkupColor = color.New(color.FgWhite)
)

// Output is where the printers write; tests swap it for a buffer
var Output io.Writer = os.Stdout

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	SuccessColor.Fprintf(Output, "✅ "+format+"\n", args...)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	ErrorColor.Fprintf(Output, "❌ "+format+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	WarningColor.Fprintf(Output, "⚠️  "+format+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	InfoColor.Fprintf(Output, "ℹ️  "+format+"\n", args...)
}

// PrintTitle prints a title
func PrintTitle(format string, args ...interface{}) {
	TitleColor.Fprintf(Output, "🎯 "+format+"\n", args...)
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Fprintln(Output, strings.Repeat("─", 80))
}

// PrintMarkup prints PlantUML markup between separators
func PrintMarkup(markup string) {
	PrintSeparator()
	MarkupColor.Fprint(Output, markup)
	PrintSeparator()
}

// PrintBucket prints the stories of one classification bucket
func PrintBucket(bucket models.Bucket, stories []models.UserStory) {
	PrintTitle("%s (%d)", bucket, len(stories))
	for i, story := range stories {
		PrintInfo("  %d. [%s] %s", i+1, story.Status, story.Text)
	}
	if len(stories) == 0 {
		PrintWarning("  no stories")
	}
}
