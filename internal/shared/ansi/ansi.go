// Package ansi wraps text in terminal color escape codes.
package ansi

import "fmt"

const reset = "\033[0m"

var codes = map[string]string{
	"red":     "31",
	"green":   "32",
	"yellow":  "33",
	"blue":    "34",
	"magenta": "35",
	"cyan":    "36",
	"white":   "37",
	"grey":    "90",
	"bold":    "1",
}

func wrap(code, text string) string {
	return fmt.Sprintf("\033[%sm%s%s", code, text, reset)
}

func Red(text string) string     { return wrap(codes["red"], text) }
func Green(text string) string   { return wrap(codes["green"], text) }
func Yellow(text string) string  { return wrap(codes["yellow"], text) }
func Blue(text string) string    { return wrap(codes["blue"], text) }
func Magenta(text string) string { return wrap(codes["magenta"], text) }
func Cyan(text string) string    { return wrap(codes["cyan"], text) }
func Grey(text string) string    { return wrap(codes["grey"], text) }
func Bold(text string) string    { return wrap(codes["bold"], text) }

// Colorize wraps text in the named color. Unknown or empty names leave the
// text untouched.
func Colorize(color, text string) string {
	code, ok := codes[color]
	if !ok {
		return text
	}
	return wrap(code, text)
}
