package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestNewTagsMessages(t *testing.T) {
	var buf bytes.Buffer
	log := New("rentals", "debug", &buf)

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	log.Info("listening")
	assert.Contains(t, buf.String(), "[rentals] listening")
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("rentals", "chatty", &buf)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "Invalid LOG_LEVEL 'chatty'")
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, logger.Info, gormLevel(logrus.TraceLevel))
	assert.Equal(t, logger.Info, gormLevel(logrus.DebugLevel))
	assert.Equal(t, logger.Warn, gormLevel(logrus.InfoLevel))
	assert.Equal(t, logger.Warn, gormLevel(logrus.WarnLevel))
	assert.Equal(t, logger.Error, gormLevel(logrus.ErrorLevel))
	assert.Equal(t, logger.Silent, gormLevel(logrus.FatalLevel))
}
