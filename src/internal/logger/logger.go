package logger

import (
	"commerce-admin-svc/src/internal/config"
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the process-wide logrus logger from configuration.
func Init(cfg *config.Configuration) {
	level, err := logrus.ParseLevel(cfg.Logs.Level)
	if err != nil {
		level = logrus.InfoLevel
		logrus.WithField("level", cfg.Logs.Level).Warn("Unknown log level, falling back to info")
	}

	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)

	if cfg.Logs.EnableJSONOutput {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}
