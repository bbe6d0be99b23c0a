// Package logger holds the process-wide logrus instance.
//
// Init must be called once from main before any other package logs.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance for the whole application.
var Log = logrus.New()

// Init configures the global logger from the environment.
//
// MCC_LOG_LEVEL selects the level (default "info").
// MCC_LOG_FORMAT selects "json" for log collection or "text" for development.
func Init() {
	logLevel, ok := os.LookupEnv("MCC_LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	logFormat := strings.ToLower(os.Getenv("MCC_LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(os.Stdout)
}
