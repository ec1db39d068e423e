package util

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestLogErr(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	assert.False(t, LogErr(nil, "never logged"))
	assert.Empty(t, hook.AllEntries())

	assert.True(t, LogErr(errors.New("boom"), "stream %s failed", "abc"))
	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, logrus.ErrorLevel, entry.Level)
		assert.Equal(t, "stream abc failed", entry.Message)
	}

	assert.True(t, LogErr(errors.New("boom")))
	assert.Equal(t, "boom", hook.LastEntry().Message)
}
