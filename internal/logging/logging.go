// Package logging configures the process logger and routes GORM's SQL
// logging through it.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

type appNameHook struct {
	appName string
}

// Levels implements logrus.Hook interface.
func (h *appNameHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook interface.
func (h *appNameHook) Fire(entry *logrus.Entry) error {
	entry.Message = "[" + h.appName + "] " + entry.Message
	return nil
}

// New returns a text logger tagged with appName. An unknown level falls
// back to info.
func New(appName, level string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	lvlStr := strings.ToLower(strings.TrimSpace(level))
	if lvlStr == "" {
		lvlStr = "info"
	}
	lvl, err := logrus.ParseLevel(lvlStr)
	if err != nil {
		log.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", level)
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	log.AddHook(&appNameHook{appName})
	return log
}

// GormLogger adapts log for GORM. Statements slower than slow are logged as
// warnings; every statement is logged at debug level.
func GormLogger(log *logrus.Logger, slow time.Duration) logger.Interface {
	return logger.New(log, logger.Config{
		SlowThreshold:             slow,
		LogLevel:                  gormLevel(log.GetLevel()),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func gormLevel(l logrus.Level) logger.LogLevel {
	switch {
	case l >= logrus.DebugLevel:
		return logger.Info
	case l >= logrus.WarnLevel:
		return logger.Warn
	case l >= logrus.ErrorLevel:
		return logger.Error
	default:
		return logger.Silent
	}
}
