package logger

import (
	"fmt"
	"strings"
)

// BadgerAdapter routes badger's printf-style logging into a Logger.
// It satisfies badger.Logger.
type BadgerAdapter struct {
	log Logger
}

// NewBadgerAdapter wraps log, tagging every entry with component=badger
func NewBadgerAdapter(log Logger) *BadgerAdapter {
	if log == nil {
		log = GetDefaultLogger()
	}
	return &BadgerAdapter{log: log.WithField("component", "badger")}
}

// Errorf logs at error level
func (a *BadgerAdapter) Errorf(format string, args ...interface{}) {
	a.log.Error(badgerMessage(format, args), nil)
}

// Warningf logs at warn level
func (a *BadgerAdapter) Warningf(format string, args ...interface{}) {
	a.log.Warn(badgerMessage(format, args), nil)
}

// Infof logs at info level
func (a *BadgerAdapter) Infof(format string, args ...interface{}) {
	a.log.Info(badgerMessage(format, args), nil)
}

// Debugf logs at debug level
func (a *BadgerAdapter) Debugf(format string, args ...interface{}) {
	a.log.Debug(badgerMessage(format, args), nil)
}

// badger terminates most of its messages with a newline
func badgerMessage(format string, args []interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
