package framework

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the debug output destination of a step.
type Logger interface {
	Printf(message string, args ...interface{})
}

type CapturedMessage struct {
	Time    time.Time
	Message string
}

// CapturedOutput is the debug output of one step, in the order it was written.
type CapturedOutput []CapturedMessage

// CapturingLogger keeps everything written to it in memory. It is safe for concurrent use.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	m := CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)}
	l.lock.Lock()
	l.output = append(l.output, m)
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append(CapturedOutput(nil), l.output...)
}

// Dump writes one timestamped line per message. Messages that span several lines, such as
// indented response bodies, have their continuation lines aligned under the first one.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		stamp := "[" + m.Time.Format(timestampFormat) + "] "
		lines := strings.Split(strings.TrimRight(m.Message, "\n"), "\n")
		fmt.Fprintf(dest, "%s%s%s\n", prefix, stamp, lines[0])
		indent := strings.Repeat(" ", len(stamp))
		for _, line := range lines[1:] {
			fmt.Fprintf(dest, "%s%s%s\n", prefix, indent, line)
		}
	}
}
