package xrandr

import (
	"bufio"
	"strings"
)

const (
	fingerprintLabel  = "EDID:"
	continuationDepth = "\t\t"
)

type parserState int

const (
	seeking parserState = iota
	collecting
)

// ParseFingerprints extracts every EDID block from `xrandr --prop` output.
// The label sits one tab deep and the hex rows two tabs deep; a block ends
// at the first line that is not indented by two tabs. Each block is
// flattened into a single string without any whitespace.
func ParseFingerprints(output string) []string {
	fingerprints := []string{}
	state := seeking
	var block strings.Builder

	flush := func() {
		if fingerprint := strings.Join(strings.Fields(block.String()), ""); fingerprint != "" {
			fingerprints = append(fingerprints, fingerprint)
		}
		block.Reset()
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()

		if state == collecting {
			if strings.HasPrefix(line, continuationDepth) {
				block.WriteString(line)
				continue
			}
			flush()
			state = seeking
		}

		// re-examined after a block ends, it may be the next label
		if after, ok := strings.CutPrefix(strings.TrimSpace(line), fingerprintLabel); ok {
			block.WriteString(after)
			state = collecting
		}
	}

	if state == collecting {
		flush()
	}

	return fingerprints
}
