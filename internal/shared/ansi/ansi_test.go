package ansi

import "testing"

func TestHelpers(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{Red("x"), "\033[31mx\033[0m"},
		{Green("x"), "\033[32mx\033[0m"},
		{Yellow("x"), "\033[33mx\033[0m"},
		{Blue("x"), "\033[34mx\033[0m"},
		{Magenta("x"), "\033[35mx\033[0m"},
		{Cyan("x"), "\033[36mx\033[0m"},
		{Grey("x"), "\033[90mx\033[0m"},
		{Bold("x"), "\033[1mx\033[0m"},
	}
	for i, c := range cases {
		if c.got != c.want {
			t.Fatalf("case %d: got %q, want %q", i, c.got, c.want)
		}
	}
}

func TestColorize(t *testing.T) {
	if got := Colorize("cyan", "hi"); got != Cyan("hi") {
		t.Fatalf("Colorize(cyan) = %q", got)
	}
	if got := Colorize("plaid", "hi"); got != "hi" {
		t.Fatalf("Colorize(unknown) = %q", got)
	}
}
