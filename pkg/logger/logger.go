package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	*logrus.Logger
}

func New() *Logger {
	l := logrus.New()
	// stdout is reserved for command output (IP address, serial console)
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &Logger{Logger: l}
}

func (l *Logger) SetDebug(debug bool) {
	if debug {
		l.SetLevel(logrus.DebugLevel)
		return
	}
	l.SetLevel(logrus.InfoLevel)
}
