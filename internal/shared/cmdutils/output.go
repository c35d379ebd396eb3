package cmdutils

import (
	"fmt"
	"io"
)

const logo = "🦙"

// PrintResponse prints a final assistant answer with the stackpilot banner.
func PrintResponse(w io.Writer, text string) {
	if text == "" {
		return
	}

	fmt.Fprintf(w, "\n%s stackpilot\n%s\n\n", logo, text)
}
