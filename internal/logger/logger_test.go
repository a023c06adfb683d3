package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	log := New("debug")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = New("not-a-level")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
