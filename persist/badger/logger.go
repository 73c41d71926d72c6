// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package badger

import (
	"github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"
)

// badgerLogger hands badger's printf style messages to zap.
type badgerLogger struct {
	*zap.SugaredLogger
}

var _ badger.Logger = badgerLogger{}

func newLogger(log *zap.Logger) badgerLogger {
	if log == nil {
		log = zap.NewNop()
	}
	return badgerLogger{log.Named("badger").Sugar()}
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}
