package logger

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	Info    *log.Logger
	Warning *log.Logger
	Error   *log.Logger
	Debug   *log.Logger
	HTTP    *log.Logger
)

var base = logrus.New()

func init() {
	bind(io.Discard)
}

// Setup routes the package loggers through logrus. LOG_LEVEL and LOG_FORMAT
// (text|json) are read from the environment.
func Setup() {
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		base.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	base.SetLevel(level)

	bind(os.Stdout)
}

// SetOutput redirects every logger, mostly for tests.
func SetOutput(w io.Writer) {
	bind(w)
}

func bind(w io.Writer) {
	base.SetOutput(w)
	Info = newLogger(base.WithField("scope", "app"), logrus.InfoLevel)
	Warning = newLogger(base.WithField("scope", "app"), logrus.WarnLevel)
	Error = newLogger(base.WithField("scope", "app"), logrus.ErrorLevel)
	Debug = newLogger(base.WithField("scope", "app"), logrus.DebugLevel)
	HTTP = newLogger(base.WithField("scope", "http"), logrus.InfoLevel)
}

func newLogger(entry *logrus.Entry, level logrus.Level) *log.Logger {
	return log.New(entry.WriterLevel(level), "", 0)
}
