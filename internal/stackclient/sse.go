package stackclient

import (
	"bufio"
	"io"
	"strings"
)

// maxSSELine bounds a single SSE line. Turn completions carry the whole
// turn record in one frame, which easily exceeds bufio's 64 KiB default.
const maxSSELine = 4 << 20

// consumeSSE reads an event stream and calls fn with the joined data lines
// of every event. A blank line ends an event; "[DONE]" is ignored.
// An error from fn stops the stream and is returned.
func consumeSSE(body io.Reader, fn func([]byte) error) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxSSELine)

	var dataParts []string
	flush := func() error {
		defer func() { dataParts = dataParts[:0] }()
		if len(dataParts) == 0 {
			return nil
		}
		data := strings.Join(dataParts, "\n")
		if data == "" || data == "[DONE]" {
			return nil
		}
		return fn([]byte(data))
	}

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if err := flush(); err != nil {
				return err
			}
		case strings.HasPrefix(line, "data:"):
			dataParts = append(dataParts, strings.TrimSpace(line[5:]))
		}
		// event:, id:, retry: and comments carry nothing we use.
	}
	if err := flush(); err != nil {
		return err
	}
	return scanner.Err()
}
