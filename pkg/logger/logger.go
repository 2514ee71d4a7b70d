package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New bikin logger dengan level dari config; level tidak valid jatuh ke info.
func New(level string) *logrus.Logger {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)

	return log
}
