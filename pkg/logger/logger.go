package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var base = logrus.New()

func init() {
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	base.SetLevel(logrus.InfoLevel)
}

// Configure sets the level and formatter once the configuration is known.
// Production gets JSON lines; everything else the human readable format.
func Configure(level string, production bool) {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	base.SetLevel(logLevel)

	if production {
		base.SetFormatter(&logrus.JSONFormatter{})
	}
}

func Logger() *logrus.Logger {
	return base
}

func Info(format string, v ...interface{}) {
	base.Infof(format, v...)
}

func Error(format string, v ...interface{}) {
	base.Errorf(format, v...)
}

func Debug(format string, v ...interface{}) {
	base.Debugf(format, v...)
}

func Warn(format string, v ...interface{}) {
	base.Warnf(format, v...)
}

// WithFields creates a logger entry with the specified fields
func WithFields(fields logrus.Fields) *logrus.Entry {
	return base.WithFields(fields)
}
