package testutils

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fiffeek/xrandrprofiles/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type logline struct {
	LogID *utils.LogID `json:"log_id"`
}

// CaptureJSONLogs redirects logrus into a buffer with the JSON formatter
// for the duration of the test.
func CaptureJSONLogs(t *testing.T) *bytes.Buffer {
	buf := new(bytes.Buffer)
	out := logrus.StandardLogger().Out
	formatter := logrus.StandardLogger().Formatter
	logrus.SetOutput(buf)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	t.Cleanup(func() {
		logrus.SetOutput(out)
		logrus.SetFormatter(formatter)
	})
	return buf
}

func AssertLogsPresent(t *testing.T, logs []byte, expectedIDs []utils.LogID) {
	if len(expectedIDs) == 0 {
		return
	}

	text := string(logs)
	lines := strings.Split(text, "\n")
	seenIDs := []utils.LogID{}
	for _, line := range lines {
		var m logline
		err := json.Unmarshal([]byte(line), &m)
		if err != nil {
			continue
		}
		if m.LogID != nil {
			seenIDs = append(seenIDs, *m.LogID)
		}
	}
	assert.Equal(t, expectedIDs, seenIDs, "seen logs ids should match")
}
