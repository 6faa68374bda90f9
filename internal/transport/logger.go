package transport

import (
	"fmt"
	"strings"

	logger "github.com/oidcrypt/oidcrypt/internal/logging"
)

// leveledLogger routes retryablehttp's logs through the CLI logger.
type leveledLogger struct {
	l logger.Logger
}

func (a leveledLogger) Error(msg string, kv ...interface{}) { a.l.Warnf("%s", format(msg, kv)) }
func (a leveledLogger) Warn(msg string, kv ...interface{})  { a.l.Warnf("%s", format(msg, kv)) }
func (a leveledLogger) Info(msg string, kv ...interface{})  { a.l.Debugf("%s", format(msg, kv)) }
func (a leveledLogger) Debug(msg string, kv ...interface{}) { a.l.Debugf("%s", format(msg, kv)) }

func format(msg string, kv []interface{}) string {
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	return b.String()
}
