// Package log provides the small leveled logger shared by the devices,
// the event loop and the drivers.
package log

import (
	"fmt"
	"io"
	"os"
)

// Logger is the logging contract accepted through the WithLogger options
// of every package in this module.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(str string)
}

type logger struct {
	out   io.Writer
	debug bool
}

// New returns a Logger writing to stdout. Debug output is discarded.
func New() Logger {
	return &logger{out: os.Stdout}
}

// NewDebug returns a Logger writing to out, including debug output.
func NewDebug(out io.Writer) Logger {
	return &logger{out: out, debug: true}
}

func (l *logger) Infof(format string, args ...interface{}) {
	fmt.Fprintf(l.out, "[INFO]\t"+format+"\n", args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(l.out, "[ERROR]\t"+format+"\n", args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	fmt.Fprintf(l.out, "[DEBUG]\t"+format+"\n", args...)
}

// Fatal logs the message and exits the process.
func (l *logger) Fatal(str string) {
	fmt.Fprintf(l.out, "[FATAL]\t%s\n", str)
	os.Exit(1)
}
