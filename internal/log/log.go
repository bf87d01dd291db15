// Package log wires up logrus the way the teacher's pkg/log/log.go does:
// JSON-formatted, file-backed in debug mode, discarded in production.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// New returns a logger entry tagged with version/debug fields. debug
// selects a file-backed development logger under configDir
// ("development.log"); otherwise the logger is set to Error level and
// all of its output is discarded, matching the teacher's
// newProductionLogger.
func New(configDir string, debug bool, version string) *logrus.Entry {
	var logger *logrus.Logger
	if debug || os.Getenv("DEBUG") == "TRUE" {
		logger = newDevelopmentLogger(configDir)
	} else {
		logger = newProductionLogger()
	}
	logger.Formatter = &logrus.JSONFormatter{}

	return logger.WithFields(logrus.Fields{
		"debug":   debug,
		"version": version,
	})
}

func getLogLevel() logrus.Level {
	strLevel := os.Getenv("LOG_LEVEL")
	level, err := logrus.ParseLevel(strLevel)
	if err != nil {
		return logrus.DebugLevel
	}
	return level
}

func newDevelopmentLogger(configDir string) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(getLogLevel())
	file, err := os.OpenFile(filepath.Join(configDir, "development.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		fmt.Println("unable to log to file")
		os.Exit(1)
	}
	logger.SetOutput(file)
	return logger
}

func newProductionLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = io.Discard
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}
