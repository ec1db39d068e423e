package util

import (
	"github.com/sirupsen/logrus"
)

// LogErr logs err with an optional format message and reports whether err
// is non-nil.
//
//	LogErr(err)
//	LogErr(err, "stream failed")
//	LogErr(err, "stream %s failed", id)
func LogErr(err error, msgAndArgs ...interface{}) bool {
	if err == nil {
		return false
	}

	entry := logrus.WithError(err)
	switch {
	case len(msgAndArgs) == 0:
		entry.Error(err.Error())

	default:
		msg, ok := msgAndArgs[0].(string)
		if !ok {
			entry.Error(err.Error())
			break
		}
		entry.Errorf(msg, msgAndArgs[1:]...)
	}

	return true
}
