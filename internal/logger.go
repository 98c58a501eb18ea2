package internal

import (
	"io"
	"log"
	"os"
	"strings"
)

const loggerFlags = 0 // log.Ltime | log.Lshortfile

type Logger struct {
	Debug *log.Logger
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger

	debugWriter io.Writer
	infoWriter  io.Writer
	warnWriter  io.Writer
	errorWriter io.Writer
	indent      int
}

func NewLogger(withDebug bool) Logger {
	debugWriter := io.Discard
	if withDebug {
		debugWriter = os.Stderr
	}
	return newLogger(debugWriter, os.Stderr, os.Stderr, os.Stderr, 0)
}

func NewNullLogger() Logger {
	return newLogger(io.Discard, io.Discard, io.Discard, io.Discard, 0)
}

func newLogger(debugWriter io.Writer, infoWriter io.Writer, warnWriter io.Writer, errorWriter io.Writer, indent int) Logger {
	prefix := strings.Repeat(" ", indent*4)
	return Logger{
		Debug:       log.New(debugWriter, prefix, loggerFlags),
		Info:        log.New(infoWriter, prefix, loggerFlags),
		Warn:        log.New(warnWriter, prefix, loggerFlags),
		Error:       log.New(errorWriter, prefix, loggerFlags),
		debugWriter: debugWriter,
		infoWriter:  infoWriter,
		warnWriter:  warnWriter,
		errorWriter: errorWriter,
		indent:      indent,
	}
}

// Nest indents all following output by one level until the returned func is called.
func (l *Logger) Nest() func() {
	*l = newLogger(l.debugWriter, l.infoWriter, l.warnWriter, l.errorWriter, l.indent+1)
	return func() {
		*l = newLogger(l.debugWriter, l.infoWriter, l.warnWriter, l.errorWriter, l.indent-1)
	}
}

func (l Logger) CloneNested() Logger {
	return newLogger(l.debugWriter, l.infoWriter, l.warnWriter, l.errorWriter, l.indent+1)
}
