// Package llmutils holds small text helpers shared by the agent, the event
// logger and the commands.
package llmutils

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/stackpilot/stackpilot/internal/schema"
)

var reThink = regexp.MustCompile(`(?s)<think>.*?</think>`)

// maxArgPreview bounds each string argument shown by DescribeCall.
const maxArgPreview = 40

// CutAt returns the longest prefix of s that fits in n bytes and does not
// split a UTF-8 sequence.
func CutAt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// Preview is CutAt followed by "..." when s was shortened. Used for
// retrieved context and memory chunks echoed to the terminal.
func Preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return CutAt(s, n) + "..."
}

// StripThink removes <think>…</think> blocks some Llama fine-tunes emit
// before the answer.
func StripThink(s string) string {
	return strings.TrimSpace(reThink.ReplaceAllString(s, ""))
}

// DescribeCall renders a custom tool call for logs, e.g.
// `web_search(query="llama 3")`. Arguments are sorted by name.
func DescribeCall(tc schema.ToolCall) string {
	keys := make([]string, 0, len(tc.Arguments))
	for k := range tc.Arguments {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]string, 0, len(keys))
	for _, k := range keys {
		var v string
		switch val := tc.Arguments[k].(type) {
		case string:
			if len(val) > maxArgPreview {
				val = CutAt(val, maxArgPreview) + "…"
			}
			b, _ := json.Marshal(val)
			v = string(b)
		default:
			b, err := json.Marshal(val)
			if err != nil {
				v = "?"
			} else {
				v = string(b)
			}
		}
		args = append(args, k+"="+v)
	}
	return tc.ToolName + "(" + strings.Join(args, ", ") + ")"
}
