package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

func InitLogger() {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel) // Adjust as needed

	logrus.Info("Logger initialized")
}

var sensitiveKeys = map[string]bool{
	"password":      true,
	"token":         true,
	"authorization": true,
}

// Redact replaces credential and token values before they reach any output.
func Redact(fields logrus.Fields) logrus.Fields {
	redacted := make(logrus.Fields, len(fields))
	for key, value := range fields {
		if sensitiveKeys[strings.ToLower(key)] {
			redacted[key] = "[REDACTED]"
			continue
		}
		redacted[key] = value
	}
	return redacted
}
