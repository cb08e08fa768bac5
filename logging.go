package toxbind

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/toxbind/engine"
)

// forwardLog is the log sink installed on the engine when logging is
// enabled. Every native message is forwarded level-for-level onto the
// configured logger; unrecognized levels are escalated to error rather
// than dropped.
func (t *Tox) forwardLog(level engine.LogLevel, file string, line uint32, function, message string, user any) {
	entry := t.log.WithFields(logrus.Fields{
		"source": "engine",
	})

	formatted := fmt.Sprintf("[%s:%d:%s]:%s", file, line, function, message)

	switch level {
	case engine.LogTrace, engine.LogDebug:
		entry.Debug(formatted)
	case engine.LogInfo:
		entry.Info(formatted)
	case engine.LogWarning:
		entry.Warn(formatted)
	default:
		entry.Error(formatted)
	}
}
