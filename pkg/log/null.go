package log

// Null discards everything. It is the default logger of every component
// until WithLogger is given.
var Null Logger = nullLogger{}

type nullLogger struct{}

func (nullLogger) Fatal(string)                  {}
func (nullLogger) Infof(string, ...interface{})  {}
func (nullLogger) Errorf(string, ...interface{}) {}
func (nullLogger) Debugf(string, ...interface{}) {}

// NewNullLogger returns a logger that does nothing.
func NewNullLogger() Logger {
	return Null
}
