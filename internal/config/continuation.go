package config

import (
	"strings"

	"github.com/fiffeek/xrandrprofiles/internal/utils"
)

// joinContinuations drops full-line comments and blank lines that sit
// between a key and its indented continuation lines, so a value interrupted
// by a gap or a commented-out entry still reads as one multi-line value.
// Gaps before the next key or section are kept as they are.
func joinContinuations(contents []byte) []byte {
	lines := strings.Split(string(contents), "\n")
	out := make([]string, 0, len(lines))
	var gap []string
	inValue := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			if inValue {
				gap = append(gap, line)
				continue
			}
			out = append(out, line)
		case utils.IsComment(trimmed):
			if inValue {
				continue
			}
			out = append(out, line)
		case line[0] == ' ' || line[0] == '\t':
			// continuation of the current value, the gap before it is dropped
			gap = nil
			out = append(out, line)
		default:
			out = append(out, gap...)
			gap = nil
			inValue = !strings.HasPrefix(trimmed, "[")
			out = append(out, line)
		}
	}
	out = append(out, gap...)

	return []byte(strings.Join(out, "\n"))
}
