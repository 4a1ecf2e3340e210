package cmdutils

import (
	"fmt"
	"io"
)

const logo = "🧮"

// PrintResponse writes an assistant reply under the app banner.
func PrintResponse(w io.Writer, text string) {
	if text == "" {
		return
	}

	fmt.Fprintf(w, "\n%s textmath\n%s\n\n", logo, text)
}

// PrintError writes an error line the way the web page renders its error banner.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "❌ %v\n", err)
}

// PrintWarning writes a warning line.
func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintf(w, "⚠️ %s\n", msg)
}
